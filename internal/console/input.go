// Package console is the interactive terminal boundary: operator prompts and population display.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/talgya/crisissim/internal/economy"
)

// Result is the outcome of parsing one line of operator input.
// A non-empty Retry means the line was rejected and the prompt should repeat.
type Result[T any] struct {
	Value T
	Retry string
}

// OK reports whether the input was accepted.
func (r Result[T]) OK() bool {
	return r.Retry == ""
}

// ParseChoice accepts an integer in [1, n].
func ParseChoice(line string, n int) Result[int] {
	v, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return Result[int]{Retry: "Invalid input. Please enter a valid number."}
	}
	if v < 1 || v > n {
		return Result[int]{Retry: fmt.Sprintf("Invalid selection. Please enter a number between 1 and %d.", n)}
	}
	return Result[int]{Value: v}
}

// ParseYesNo accepts "yes" or "no", trimmed and case-insensitive.
func ParseYesNo(line string) Result[bool] {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "yes":
		return Result[bool]{Value: true}
	case "no":
		return Result[bool]{Value: false}
	}
	return Result[bool]{Retry: "Invalid input. Please enter 'yes' or 'no'."}
}

// Operator reads the operator's answers from a line-oriented reader.
// Lines are read on a background goroutine so a canceled context
// unblocks a pending prompt.
type Operator struct {
	in  *bufio.Reader
	out io.Writer
	ui  *Display

	once  sync.Once
	lines chan inputLine
}

type inputLine struct {
	text string
	err  error
}

// NewOperator prompts on out and reads answers from in.
func NewOperator(in io.Reader, out io.Writer) *Operator {
	return &Operator{in: bufio.NewReader(in), out: out, ui: NewDisplay(out)}
}

// MaxLineBytes bounds one answer. Longer lines are discarded and read back as
// empty, which every prompt rejects.
const MaxLineBytes = 4096

func (o *Operator) scan() {
	defer close(o.lines)
	for {
		text, err := readBoundedLine(o.in, MaxLineBytes)
		if err != nil {
			if errors.Is(err, io.EOF) {
				err = io.ErrUnexpectedEOF
			}
			o.lines <- inputLine{err: err}
			return
		}
		o.lines <- inputLine{text: text}
	}
}

// readBoundedLine returns the next line without its terminator. A line longer
// than limit is consumed in full and returned as "". A final line without a
// newline is returned before io.EOF.
func readBoundedLine(r *bufio.Reader, limit int) (string, error) {
	var buf []byte
	tooLong := false
	for {
		chunk, err := r.ReadSlice('\n')
		if !tooLong {
			if len(buf)+len(chunk) > limit+2 {
				tooLong, buf = true, nil
			} else {
				buf = append(buf, chunk...)
			}
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		if err != nil && (tooLong || len(buf) == 0) {
			if tooLong && errors.Is(err, io.EOF) {
				return "", nil
			}
			return "", err
		}
		line := strings.TrimRight(string(buf), "\r\n")
		if tooLong || len(line) > limit {
			return "", nil
		}
		return line, nil
	}
}

// readLine waits for the next line or for ctx to end.
func (o *Operator) readLine(ctx context.Context) (string, error) {
	o.once.Do(func() {
		o.lines = make(chan inputLine)
		go o.scan()
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case l, ok := <-o.lines:
		if !ok {
			return "", io.ErrUnexpectedEOF
		}
		return l.text, l.err
	}
}

// ChoosePolicy lists the catalog and re-prompts until a valid number is entered.
func (o *Operator) ChoosePolicy(ctx context.Context, catalog []economy.Policy) (economy.Policy, error) {
	o.ui.PolicyMenu(catalog)

	prompt := fmt.Sprintf("Enter the number of your choice (1-%d): ", len(catalog))
	n, err := ask(ctx, o, prompt, func(line string) Result[int] {
		return ParseChoice(line, len(catalog))
	})
	if err != nil {
		return economy.Policy{}, err
	}
	return economy.PolicyByChoice(catalog, n)
}

// Continue asks whether to face another crisis.
func (o *Operator) Continue(ctx context.Context) (bool, error) {
	return ask(ctx, o, "\nDo you want to continue with another crisis? (yes/no): ", ParseYesNo)
}

// ask repeats prompt until parse accepts a line. End of input is an error.
func ask[T any](ctx context.Context, o *Operator, prompt string, parse func(string) Result[T]) (T, error) {
	var zero T
	for {
		if err := ctx.Err(); err != nil {
			return zero, err
		}
		fmt.Fprint(o.out, prompt)

		text, err := o.readLine(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return zero, err
			}
			return zero, fmt.Errorf("read input: %w", err)
		}

		r := parse(text)
		if r.OK() {
			return r.Value, nil
		}
		o.ui.Reject(r.Retry)
	}
}
