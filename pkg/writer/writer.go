// Package writer emits the retained rows of a stream pair.
//
// The primary and auxiliary sequences are walked in lockstep and a row is
// written to both destinations or to neither. Lines are copied byte for byte;
// nothing is re-serialized.
package writer

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/agentstation/funcsync/pkg/constants"
	"github.com/agentstation/funcsync/pkg/errors"
	"github.com/agentstation/funcsync/pkg/logging"
	"github.com/agentstation/funcsync/pkg/record"
	"github.com/agentstation/funcsync/pkg/selector"
)

// Side names one half of a stream pair.
type Side string

// Sides of a stream pair.
const (
	SidePrimary Side = "primary"
	SideAux     Side = "aux"
)

// SideError reports which destination of a pair failed.
type SideError struct {
	Side Side
	Err  error
}

// Error implements the error interface
func (e *SideError) Error() string {
	return fmt.Sprintf("%s output: %v", e.Side, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *SideError) Unwrap() error {
	return e.Err
}

// WritePaired writes the retained rows of records and auxLines to primary
// and aux, preserving their original order. It returns the number of rows
// written. Destination failures are reported as *SideError.
func WritePaired(primary, aux io.Writer, records []record.Record, auxLines []string, keep *selector.Retention) (int, error) {
	if len(records) != len(auxLines) {
		return 0, errors.NewPairingError("", "", "", len(records), len(auxLines))
	}
	if keep == nil {
		return 0, errors.NewValidationError("retention", nil, "cannot be nil")
	}

	pw := bufio.NewWriterSize(primary, constants.WriteBufferSize)
	aw := bufio.NewWriterSize(aux, constants.WriteBufferSize)

	written := 0
	for _, i := range keep.Indices() {
		if i < 0 || i >= len(records) {
			return written, errors.NewValidationError("retention", i, "index out of range")
		}
		if _, err := pw.WriteString(records[i].Raw); err != nil {
			return written, &SideError{Side: SidePrimary, Err: err}
		}
		if _, err := aw.WriteString(auxLines[i]); err != nil {
			return written, &SideError{Side: SideAux, Err: err}
		}
		written++
	}

	if err := pw.Flush(); err != nil {
		return written, &SideError{Side: SidePrimary, Err: err}
	}
	if err := aw.Flush(); err != nil {
		return written, &SideError{Side: SideAux, Err: err}
	}
	return written, nil
}

// Pair names a primary and an auxiliary file.
type Pair struct {
	Primary string
	Aux     string
}

// Files writes the retained rows into the out pair. Each output is written to
// a temporary file in its destination directory and renamed into place, so
// a failed run never leaves a half-written output behind. Writing over any
// path of the in pair is refused.
//
// The two renames are not one atomic step. If the auxiliary rename fails
// after the primary one succeeded, the fresh primary output is removed so the
// pair is never left half updated; a previous primary output at that path is
// lost as well.
func Files(ctx context.Context, in, out Pair, records []record.Record, auxLines []string, keep *selector.Retention) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	for _, dst := range []string{out.Primary, out.Aux} {
		for _, src := range []string{in.Primary, in.Aux} {
			if samePath(dst, src) {
				return 0, errors.NewValidationError("output", dst, "refusing to overwrite input file")
			}
		}
	}
	if samePath(out.Primary, out.Aux) {
		return 0, errors.NewValidationError("output", out.Aux, "primary and auxiliary outputs must differ")
	}

	ptmp, err := createTemp(out.Primary)
	if err != nil {
		return 0, err
	}
	defer cleanupTemp(ptmp)

	atmp, err := createTemp(out.Aux)
	if err != nil {
		return 0, err
	}
	defer cleanupTemp(atmp)

	written, err := WritePaired(ptmp, atmp, records, auxLines, keep)
	if err != nil {
		if se, ok := err.(*SideError); ok {
			path := out.Primary
			if se.Side == SideAux {
				path = out.Aux
			}
			return written, errors.WrapIO("write", path, se.Err)
		}
		return written, err
	}

	var renamed []string
	for _, step := range []struct {
		tmp  *os.File
		dest string
	}{{ptmp, out.Primary}, {atmp, out.Aux}} {
		if err := install(step.tmp, step.dest); err != nil {
			for _, path := range renamed {
				_ = os.Remove(path)
			}
			return written, err
		}
		renamed = append(renamed, step.dest)
	}

	logging.FromContext(ctx).Debug().
		Str("primary", out.Primary).
		Str("aux", out.Aux).
		Int("rows", written).
		Msg("Wrote cleaned pair")
	return written, nil
}

// install closes tmp and renames it to dest.
func install(tmp *os.File, dest string) error {
	if err := tmp.Close(); err != nil {
		return errors.WrapIO("close", tmp.Name(), err)
	}
	if err := os.Chmod(tmp.Name(), constants.FilePermissions); err != nil {
		return errors.WrapIO("chmod", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), dest); err != nil {
		return errors.WrapIO("rename", dest, err)
	}
	return nil
}

func createTemp(dest string) (*os.File, error) {
	dir := filepath.Dir(dest)
	if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
		return nil, errors.WrapIO("create", dir, err)
	}
	f, err := os.CreateTemp(dir, constants.TempFilePattern)
	if err != nil {
		return nil, errors.WrapIO("create", dest, err)
	}
	return f, nil
}

// cleanupTemp removes a temp file that was not renamed into place.
func cleanupTemp(f *os.File) {
	_ = f.Close()
	if _, err := os.Stat(f.Name()); err == nil {
		_ = os.Remove(f.Name())
	}
}

func samePath(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA == nil && errB == nil && absA == absB {
		return true
	}
	infoA, errA := os.Stat(a)
	infoB, errB := os.Stat(b)
	return errA == nil && errB == nil && os.SameFile(infoA, infoB)
}
