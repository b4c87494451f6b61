package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"titleblock/internal/domain"
	"titleblock/internal/ports"
)

// Prompter asks questions on a terminal. It serves as both the run
// Confirmer and the mapping ConflictResolver.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

var (
	_ ports.Confirmer        = (*Prompter)(nil)
	_ ports.ConflictResolver = (*Prompter)(nil)
)

// NewPrompter creates a Prompter reading answers from in
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// ConfirmContinue asks whether to go on after the first file. End of input
// counts as no.
func (p *Prompter) ConfirmContinue(ctx context.Context, firstFile string) (bool, error) {
	for {
		fmt.Fprintf(p.out, "Check %s. Continue with the remaining drawings? [y/N] ", filepath.Base(firstFile))
		line, err := p.readLine(ctx)
		if err != nil {
			if err == io.EOF {
				return false, nil
			}
			return false, err
		}
		switch strings.ToLower(line) {
		case "y", "yes":
			return true, nil
		case "", "n", "no":
			return false, nil
		}
	}
}

// Resolve asks how to settle conflict. End of input cancels.
func (p *Prompter) Resolve(conflict domain.Conflict) domain.Resolution {
	for {
		fmt.Fprintf(p.out, "%s is mapped to %q, the sample proposes %q.\n", bold.Sprint(conflict.Tag), conflict.Existing, conflict.Proposed)
		fmt.Fprint(p.out, "[k]eep, [r]eplace, keep [a]ll, replace a[l]l, [c]ancel? ")
		line, err := p.readLine(context.Background())
		if err != nil {
			return domain.ResolveCancel
		}
		if r, ok := parseResolution(line); ok {
			return r
		}
	}
}

func parseResolution(answer string) (domain.Resolution, bool) {
	switch strings.ToLower(answer) {
	case "k", "keep":
		return domain.ResolveKeep, true
	case "r", "replace":
		return domain.ResolveReplace, true
	case "a", "keep-all":
		return domain.ResolveKeepAll, true
	case "l", "replace-all":
		return domain.ResolveReplaceAll, true
	case "c", "cancel":
		return domain.ResolveCancel, true
	}
	return 0, false
}

// readLine reads one trimmed line. A cancelled ctx abandons the read.
func (p *Prompter) readLine(ctx context.Context) (string, error) {
	type result struct {
		line string
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		line, err := p.in.ReadString('\n')
		if err == io.EOF && line != "" {
			err = nil
		}
		ch <- result{strings.TrimSpace(line), err}
	}()
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-ch:
		return r.line, r.err
	}
}
