package main

import (
	"bytes"
	"io/ioutil"
	"os"
	"os/user"
	"path/filepath"
	"testing"
	"time"

	"github.com/dpinela/rgbcss/internal/termesc"
)

const testConfig = `
Selector = ".brand"
Output = "out/brand.css"

[Colors]
salmon = "rgb(250, 128, 114)"
ink = "rgb(5, 10, 15)"
`

const testCSS = ".brand {\n  --ink: rgb(5, 10, 15);\n  --salmon: rgb(250, 128, 114);\n}\n"

func tempConfig(t *testing.T, content string) (dir, path string) {
	t.Helper()
	dir, err := ioutil.TempDir("", "rgbcss-app-test")
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(dir, "out"), 0700); err != nil {
		t.Fatal(err)
	}
	path = filepath.Join(dir, "config.toml")
	if err := ioutil.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return dir, path
}

func readFile(t *testing.T, name string) string {
	t.Helper()
	data, err := ioutil.ReadFile(name)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestPrintColors(t *testing.T) {
	var out bytes.Buffer
	app := &application{stdout: &out}
	if err := app.printColors([]string{"rgb(5, 10, 15)", "rgb( 0,0 ,0)", " rgb(255,255,255) "}); err != nil {
		t.Fatal(err)
	}
	if want := "rgb(5, 10, 15)\nrgb(0, 0, 0)\nrgb(255, 255, 255)\n"; out.String() != want {
		t.Errorf("printColors: got %q, want %q", out.String(), want)
	}
	out.Reset()
	if err := app.printColors([]string{"rgb(1, 2, 3)", "#FA8072", "rgb(4, 5, 6)"}); err == nil {
		t.Error("printColors with a hex color succeeded; want error")
	}
	if want := "rgb(1, 2, 3)\n"; out.String() != want {
		t.Errorf("printColors stopping at an error: got %q, want %q", out.String(), want)
	}
}

func TestGenerate(t *testing.T) {
	dir, path := tempConfig(t, testConfig)
	defer os.RemoveAll(dir)
	app := &application{configPath: path, stdout: ioutil.Discard, stderr: ioutil.Discard}
	if err := app.generate(); err != nil {
		t.Fatal(err)
	}
	if got := readFile(t, filepath.Join(dir, "out", "brand.css")); got != testCSS {
		t.Errorf("generated stylesheet: got %q, want %q", got, testCSS)
	}
}

func TestGenerateOverrides(t *testing.T) {
	dir, path := tempConfig(t, testConfig)
	defer os.RemoveAll(dir)
	var out bytes.Buffer
	prefix := "x-"
	app := &application{configPath: path, output: "-", selector: ":root", prefix: &prefix, stdout: &out}
	if err := app.generate(); err != nil {
		t.Fatal(err)
	}
	const want = ":root {\n  --x-ink: rgb(5, 10, 15);\n  --x-salmon: rgb(250, 128, 114);\n}\n"
	if out.String() != want {
		t.Errorf("generate to stdout: got %q, want %q", out.String(), want)
	}
	if _, err := os.Stat(filepath.Join(dir, "out", "brand.css")); !os.IsNotExist(err) {
		t.Errorf("generate to stdout also wrote the configured output (stat error: %v)", err)
	}
}

func TestGenerateBadConfig(t *testing.T) {
	dir, path := tempConfig(t, "[Colors]\nsalmon = \"#FA8072\"\n")
	defer os.RemoveAll(dir)
	app := &application{configPath: path, stdout: ioutil.Discard}
	if err := app.generate(); err == nil {
		t.Error("generate with a hex color in the config succeeded; want error")
	}
}

func TestGenerateBadPrefix(t *testing.T) {
	dir, path := tempConfig(t, testConfig)
	defer os.RemoveAll(dir)
	prefix := "my brand;"
	app := &application{configPath: path, prefix: &prefix, stdout: ioutil.Discard}
	if err := app.generate(); err == nil {
		t.Errorf("generate with prefix %q succeeded; want error", prefix)
	}
	if _, err := os.Stat(filepath.Join(dir, "out", "brand.css")); !os.IsNotExist(err) {
		t.Errorf("generate with a bad prefix wrote the stylesheet (stat error: %v)", err)
	}
}

func TestPreview(t *testing.T) {
	dir, path := tempConfig(t, testConfig)
	defer os.RemoveAll(dir)
	var out bytes.Buffer
	app := &application{configPath: path, stdout: &out}
	if err := app.preview(); err != nil {
		t.Fatal(err)
	}
	if want := "ink     rgb(5, 10, 15)\nsalmon  rgb(250, 128, 114)\n"; out.String() != want {
		t.Errorf("preview: got %q, want %q", out.String(), want)
	}
}

func TestCopyUnknownColor(t *testing.T) {
	dir, path := tempConfig(t, testConfig)
	defer os.RemoveAll(dir)
	app := &application{configPath: path}
	if err := app.copyColor("teal"); err == nil {
		t.Error("copying a color not in the palette succeeded; want error")
	}
}

func TestWatch(t *testing.T) {
	dir, path := tempConfig(t, testConfig)
	defer os.RemoveAll(dir)
	app := &application{configPath: path, stdout: ioutil.Discard, stderr: ioutil.Discard}
	stop := make(chan struct{})
	done := make(chan error)
	go func() { done <- app.watch(stop) }()

	const updated = "Output = \"watched.css\"\n[Colors]\nteal = \"rgb(0, 128, 128)\"\n"
	const wantCSS = ":root {\n  --teal: rgb(0, 128, 128);\n}\n"
	outName := filepath.Join(dir, "watched.css")
	deadline := time.Now().Add(5 * time.Second)
	for {
		// Keep rewriting the file, since the watcher may not have started yet.
		if err := ioutil.WriteFile(path, []byte(updated), 0644); err != nil {
			t.Fatal(err)
		}
		time.Sleep(50 * time.Millisecond)
		if data, err := ioutil.ReadFile(outName); err == nil && string(data) == wantCSS {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("stylesheet not regenerated after config change")
		}
	}
	close(stop)
	select {
	case err := <-done:
		if err != nil {
			t.Error(err)
		}
	case <-time.After(time.Second):
		t.Error("watch didn't return after stop was closed")
	}
}

func TestExpandPath(t *testing.T) {
	defer func(old func() (*user.User, error)) { currentUser = old }(currentUser)
	home := filepath.Join(string(filepath.Separator)+"home", "someone")
	currentUser = func() (*user.User, error) { return &user.User{HomeDir: home}, nil }
	if err := os.Setenv("RGBCSS_TEST_DIR", "styles"); err != nil {
		t.Fatal(err)
	}
	defer os.Unsetenv("RGBCSS_TEST_DIR")
	cases := []struct{ in, out string }{
		{"palette.css", "palette.css"},
		{filepath.Join("~", "palette.css"), filepath.Join(home, "palette.css")},
		{filepath.Join("$RGBCSS_TEST_DIR", "palette.css"), filepath.Join("styles", "palette.css")},
		{"~palette.css", "~palette.css"},
	}
	for _, tt := range cases {
		if got := expandPath(tt.in); got != tt.out {
			t.Errorf("expandPath(%q) = %q, want %q", tt.in, got, tt.out)
		}
	}
}

func TestStatus(t *testing.T) {
	var log bytes.Buffer
	app := &application{stderr: &log}
	app.status("regenerated", termesc.ColorGreen)
	if want := "regenerated\n"; log.String() != want {
		t.Errorf("status without a terminal: got %q, want %q", log.String(), want)
	}
	log.Reset()
	app.isTerminal = true
	app.status("failed", termesc.StyleBold, termesc.ColorRed)
	if want := "\r\x1B[2K\x1B[1;31mfailed\x1B[m"; log.String() != want {
		t.Errorf("status on a terminal: got %q, want %q", log.String(), want)
	}
}
