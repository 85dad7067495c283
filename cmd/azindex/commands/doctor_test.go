package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/azindex/azindex/internal/errors"
)

func resetDoctorFlags(t *testing.T) {
	t.Helper()
	doctorJSON, doctorQuiet, doctorVerbose = false, false, false
}

func TestDoctor_HealthyArtifacts(t *testing.T) {
	writeArtifacts(t, useDataDir(t))
	resetDoctorFlags(t)
	doctorVerbose = true

	var buf bytes.Buffer
	doctorCmd.SetOut(&buf)
	doctorCmd.SetContext(testContext(t))
	if err := runDoctor(doctorCmd, nil); err != nil {
		t.Fatalf("runDoctor on healthy artifacts: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"manifest", "module-details", "0 warnings, 0 errors"} {
		if !strings.Contains(out, want) {
			t.Errorf("verbose output should contain %q\ngot:\n%s", want, out)
		}
	}
}

func TestDoctor_MissingArtifacts(t *testing.T) {
	useDataDir(t)
	resetDoctorFlags(t)

	var buf bytes.Buffer
	doctorCmd.SetOut(&buf)
	doctorCmd.SetContext(testContext(t))
	err := runDoctor(doctorCmd, nil)

	var exitErr *errors.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected an ExitError, got %v", err)
	}
	if exitErr.Code != errors.ExitSystem {
		t.Errorf("Code = %d, want %d (manifest errors)", exitErr.Code, errors.ExitSystem)
	}
	if !strings.Contains(buf.String(), "manifest unreadable") {
		t.Errorf("output should name the manifest failure:\n%s", buf.String())
	}
}

func TestDoctor_FlagExclusivity(t *testing.T) {
	resetDoctorFlags(t)
	doctorJSON = true
	doctorQuiet = true

	if err := validateDoctorFlags(doctorCmd, nil); err == nil {
		t.Error("expected an error for mutually exclusive flags")
	}
}
