package e2e

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"reflect"
	"regexp"
	"strings"
	"testing"

	"github.com/bradleyjkemp/cupaloy/v2"
)

var snapshotter = cupaloy.New(cupaloy.FailOnUpdate(false))

// slog text lines carry a wall-clock time attribute
var logTimeRegex = regexp.MustCompile(`time=\S+ `)

func getBinaryPath() string {
	// Try ./i18ngrd first
	if _, err := os.Stat("./i18ngrd"); err == nil {
		return "./i18ngrd"
	}
	// Try bin/i18ngrd
	if _, err := os.Stat("bin/i18ngrd"); err == nil {
		return "bin/i18ngrd"
	}
	// Fallback to just "i18ngrd" (assumes it's in PATH)
	return "i18ngrd"
}

func setupMockRepo(t *testing.T, repoName string) string {
	testdataDir := filepath.Join("testdata", repoName)

	if _, err := os.Stat(testdataDir); os.IsNotExist(err) {
		t.Fatalf("Testdata directory not found: %s", testdataDir)
	}

	absPath, err := filepath.Abs(testdataDir)
	if err != nil {
		t.Fatalf("Failed to get absolute path: %v", err)
	}

	// i18ngrd scan is read-only, so we can use testdata directly
	return absPath
}

func normalizeOutput(output string) string {
	output = removeANSICodes(output)

	lines := strings.Split(output, "\n")
	var normalized []string
	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, "Version: "):
			normalized = append(normalized, "Version: [VERSION]")
		case strings.HasPrefix(line, "Analysis completed at "):
			normalized = append(normalized, "Analysis completed at [TIMESTAMP]")
		default:
			normalized = append(normalized, logTimeRegex.ReplaceAllString(line, ""))
		}
	}
	return strings.Join(normalized, "\n")
}

func removeANSICodes(s string) string {
	// Remove ANSI escape sequences (e.g., [1m, [33m, [0m, [90m)
	var result strings.Builder
	inEscape := false
	for i := 0; i < len(s); i++ {
		if s[i] == '\033' {
			inEscape = true
			continue
		}
		if inEscape {
			if s[i] == 'm' {
				inEscape = false
			}
			continue
		}
		result.WriteByte(s[i])
	}
	return result.String()
}

// scanReport is the part of the json report the assertions read
type scanReport struct {
	Summary struct {
		TotalKeys   int `json:"totalKeys"`
		UnusedKeys  int `json:"unusedKeys"`
		MissingKeys int `json:"missingKeys"`
		Coverage    int `json:"coverage"`
	} `json:"summary"`
	Analysis struct {
		UnusedKeys  []string `json:"unusedKeys"`
		IgnoredKeys []string `json:"ignoredKeys"`
		MissingKeys []struct {
			Key       string `json:"key"`
			Locations []struct {
				File string `json:"file"`
				Line int    `json:"line"`
			} `json:"locations"`
		} `json:"missingKeys"`
		DynamicPatterns []struct {
			Pattern string   `json:"pattern"`
			Matches []string `json:"matches"`
		} `json:"dynamicPatterns"`
		LanguageGaps map[string][]string `json:"languageGaps"`
	} `json:"analysis"`
}

func (r scanReport) missing() []string {
	keys := []string{}
	for _, m := range r.Analysis.MissingKeys {
		keys = append(keys, m.Key)
	}
	return keys
}

func (r scanReport) patterns() map[string][]string {
	patterns := make(map[string][]string)
	for _, p := range r.Analysis.DynamicPatterns {
		patterns[p.Pattern] = p.Matches
	}
	return patterns
}

func scanCommand(envVars map[string]string, args ...string) *exec.Cmd {
	cmd := exec.Command(getBinaryPath(), args...)
	if envVars != nil {
		cmd.Env = os.Environ()
		for k, v := range envVars {
			cmd.Env = append(cmd.Env, k+"="+v)
		}
	}
	return cmd
}

// exitCode returns the process exit code, failing on anything but 0 or 1
func exitCode(t *testing.T, err error, output []byte) int {
	t.Helper()
	if err == nil {
		return 0
	}
	exitError, ok := err.(*exec.ExitError)
	if !ok {
		t.Fatalf("i18ngrd scan failed: %v\nOutput: %s", err, output)
	}
	// Exit code 1 is expected with --exit-on-issues when keys are unused or missing
	if exitError.ExitCode() != 1 {
		t.Fatalf("Unexpected exit code: %d\nOutput: %s", exitError.ExitCode(), output)
	}
	return 1
}

// runScanTest runs a console scan, snapshots it and returns the
// normalized output with the exit code
func runScanTest(t *testing.T, repoName string, envVars map[string]string, extraArgs ...string) (string, int) {
	mockRepo := setupMockRepo(t, repoName)

	args := append([]string{"scan", mockRepo}, extraArgs...)
	output, err := scanCommand(envVars, args...).CombinedOutput()
	code := exitCode(t, err, output)

	normalizedOutput := normalizeOutput(string(output))
	snapshotter.SnapshotT(t, normalizedOutput)
	return normalizedOutput, code
}

// runJSONScan runs the same scan with json output and decodes the report
func runJSONScan(t *testing.T, repoName string, envVars map[string]string) scanReport {
	mockRepo := setupMockRepo(t, repoName)

	args := []string{"scan", mockRepo, "--format", "json",
		"--output", "summary,dynamicPatterns,ignored,unused,missing,translationKeys"}
	stdout, err := scanCommand(envVars, args...).Output()
	exitCode(t, err, stdout)

	var report scanReport
	if err := json.Unmarshal(stdout, &report); err != nil {
		t.Fatalf("Failed to decode report: %v\n%s", err, stdout)
	}
	return report
}

func assertKeys(t *testing.T, name string, got, want []string) {
	t.Helper()
	if got == nil {
		got = []string{}
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertContains(t *testing.T, output string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(output, want) {
			t.Errorf("Expected %q in output:\n%s", want, output)
		}
	}
}

func TestE2E_BasicScan(t *testing.T) {
	output, code := runScanTest(t, "mock-repo", nil)
	if code != 0 {
		t.Errorf("Issues without --exit-on-issues should exit 0, got %d", code)
	}
	assertContains(t, output,
		"Total translation keys: 9",
		"Pattern: status.* (3 match(es))",
		"Unused Translation Keys (2)",
		"- errors.legacy",
		"- nav.settings",
		"Missing Translation Keys (1)",
		"cart.checkout",
		"used in: src/app/app.component.ts:18",
	)

	report := runJSONScan(t, "mock-repo", nil)
	assertKeys(t, "unused", report.Analysis.UnusedKeys, []string{"errors.legacy", "nav.settings"})
	assertKeys(t, "missing", report.missing(), []string{"cart.checkout"})
	assertKeys(t, "ignored", report.Analysis.IgnoredKeys, []string{})
	assertKeys(t, "status.*", report.patterns()["status.*"], []string{"status.active", "status.inactive", "status.pending"})
	if len(report.Analysis.DynamicPatterns) != 1 {
		t.Errorf("Expected only the status.* pattern, got %+v", report.Analysis.DynamicPatterns)
	}
	if report.Summary.TotalKeys != 9 || report.Summary.Coverage != 56 {
		t.Errorf("Unexpected summary %+v", report.Summary)
	}
}

func TestE2E_AllSections(t *testing.T) {
	// Used keys with their locations and per-language gaps (fr lacks two keys)
	output, _ := runScanTest(t, "mock-repo", nil, "--output", "summary,dynamicPatterns,unused,missing,usedKeys,translationKeys")
	assertContains(t, output,
		"Used Translation Keys (8)",
		"- app.welcome",
		"- nav.home",
		"Available Translation Keys (9)",
		"Languages: en, fr",
	)

	report := runJSONScan(t, "mock-repo", nil)
	assertKeys(t, "fr gaps", report.Analysis.LanguageGaps["fr"], []string{"errors.legacy", "nav.settings"})
	if _, ok := report.Analysis.LanguageGaps["en"]; ok {
		t.Errorf("en defines every key, got gaps %v", report.Analysis.LanguageGaps["en"])
	}
}

func TestE2E_ConfigIgnores(t *testing.T) {
	// Keys matched by .i18ngrd.yaml rules are reported as ignored, and files
	// under excluded folders or matching excluded globs are not scanned
	output, _ := runScanTest(t, "mock-repo-ignores", nil)
	assertContains(t, output,
		"Ignored keys: 5",
		"Ignored Translation Keys (5)",
		`exact "cms.footer": 1 key(s)`,
		`pattern "debug.*": 3 key(s)`,
		`regex "^test\\.": 1 key(s)`,
		"Unused Translation Keys (1)",
		"- menu.open",
		"No missing translation keys found!",
	)

	report := runJSONScan(t, "mock-repo-ignores", nil)
	assertKeys(t, "ignored", report.Analysis.IgnoredKeys,
		[]string{"cms.footer", "debug.panel", "debug.trace", "debug.unknownLabel", "test.fixture"})
	assertKeys(t, "unused", report.Analysis.UnusedKeys, []string{"menu.open"})
	// spec.only and generated.key live in excluded files
	assertKeys(t, "missing", report.missing(), []string{})
}

func TestE2E_EnvOverrides(t *testing.T) {
	// I18NGRD_* variables apply on top of the defaults
	envVars := map[string]string{
		"I18NGRD_IGNORE_PATTERNS": "feature.*",
		"I18NGRD_EXIT_ON_ISSUES":  "true",
	}
	output, code := runScanTest(t, "mock-repo-env", envVars)
	if code != 0 {
		t.Errorf("feature.beta is ignored so the scan has no issues, got exit code %d", code)
	}
	assertContains(t, output,
		"Pattern: menu.items.* (2 match(es))",
		"No issues found",
	)

	report := runJSONScan(t, "mock-repo-env", envVars)
	assertKeys(t, "ignored", report.Analysis.IgnoredKeys, []string{"feature.beta"})
	assertKeys(t, "unused", report.Analysis.UnusedKeys, []string{})
	assertKeys(t, "menu.items.*", report.patterns()["menu.items.*"], []string{"menu.items.dashboard", "menu.items.reports"})

	// Without the variable feature.beta is unused and the scan fails
	out, err := scanCommand(map[string]string{"I18NGRD_EXIT_ON_ISSUES": "true"}, "scan", setupMockRepo(t, "mock-repo-env")).CombinedOutput()
	if code := exitCode(t, err, out); code != 1 {
		t.Errorf("Expected exit code 1 for the unused feature.beta, got %d", code)
	}
}

func TestE2E_ExitOnIssues(t *testing.T) {
	mockRepo := setupMockRepo(t, "mock-repo")

	cmd := exec.Command(getBinaryPath(), "scan", mockRepo, "--silent", "--exit-on-issues")
	output, err := cmd.CombinedOutput()

	exitError, ok := err.(*exec.ExitError)
	if !ok || exitError.ExitCode() != 1 {
		t.Fatalf("Expected exit code 1, got %v\nOutput: %s", err, output)
	}
	if len(output) != 0 {
		t.Errorf("Silent mode should print nothing, got %q", output)
	}
}
