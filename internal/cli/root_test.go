package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runCommand(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	// flag values stick between Execute calls; clear the ones that leak
	_ = genCmd.Flags().Set("config", "")
	_ = genCmd.Flags().Set("seed", "0")
	out := &bytes.Buffer{}
	errBuf := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetErr(errBuf)
	rootCmd.SetArgs(args)
	err = rootCmd.Execute()
	return out.String(), errBuf.String(), err
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "genhosts.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestGenCommand(t *testing.T) {
	out, _, err := runCommand(t, "gen", "192.168.1.0/30", "--seed", "1")
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 pairs, got %d: %q", len(lines), out)
	}
	for _, l := range lines {
		if !strings.Contains(l, "192.168.1.") {
			t.Fatalf("line missing address: %q", l)
		}
	}
}

func TestGenSkipsBadSubnet(t *testing.T) {
	out, errOut, err := runCommand(t, "gen", "not-a-subnet", "10.0.0.5/32", "--seed", "1")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(errOut, "not-a-subnet") {
		t.Fatalf("expected warning on stderr, got %q", errOut)
	}
	if !strings.Contains(out, "10.0.0.5") {
		t.Fatalf("valid subnet not generated: %q", out)
	}
}

func TestGenAllSubnetsBad(t *testing.T) {
	_, _, err := runCommand(t, "gen", "1.2.3", "1.2.3.256")
	if err == nil {
		t.Fatal("expected error when no subnet parses")
	}
}

func TestGenReproducibleSeed(t *testing.T) {
	a, _, err := runCommand(t, "gen", "172.16.0.0/29", "--seed", "7")
	if err != nil {
		t.Fatal(err)
	}
	b, _, err := runCommand(t, "gen", "172.16.0.0/29", "--seed", "7")
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Fatal("same seed produced different output")
	}
}

func TestInfoCommand(t *testing.T) {
	out, _, err := runCommand(t, "info", "128.99.33.43/18")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"network", "count", "128.99.0.0/18"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output: %q", want, out)
		}
	}
}

func TestInfoMalformed(t *testing.T) {
	if _, _, err := runCommand(t, "info", "1.2.3.4/33"); err == nil {
		t.Fatal("expected error")
	}
}

func TestRangeCommand(t *testing.T) {
	out, _, err := runCommand(t, "range", "10.0.0.0/30")
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 4 || lines[0] != "10.0.0.0" || lines[3] != "10.0.0.3" {
		t.Fatalf("unexpected range output: %q", out)
	}
}

func TestWordsCommand(t *testing.T) {
	out, _, err := runCommand(t, "words", "--min-word-len", "5")
	if err != nil {
		t.Fatal(err)
	}
	for _, l := range strings.Split(strings.TrimSpace(out), "\n") {
		if len(l) < 5 {
			t.Fatalf("word %q shorter than requested minimum", l)
		}
	}
}

func TestGenConfigFile(t *testing.T) {
	path := writeConfig(t, "minWordLength: 5\nseed: 11\n")
	out, _, err := runCommand(t, "gen", "10.0.0.5/32", "--config", path)
	if err != nil {
		t.Fatal(err)
	}
	host := strings.Fields(strings.TrimSpace(out))[0]
	word := host[:strings.IndexByte(host, '-')]
	if len(word) < 5 {
		t.Fatalf("config minWordLength not applied: %q", host)
	}
}

func TestGenJSONOutput(t *testing.T) {
	out, _, err := runCommand(t, "gen", "10.0.0.5/32", "--seed", "1", "-o", "json")
	if err != nil {
		t.Fatal(err)
	}
	defer func() { format = outHuman }()
	var pairs []struct {
		Host string `json:"host"`
		Addr string `json:"addr"`
	}
	if err := json.Unmarshal([]byte(out), &pairs); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if len(pairs) != 1 || pairs[0].Addr != "10.0.0.5" {
		t.Fatalf("unexpected pairs: %v", pairs)
	}
}
