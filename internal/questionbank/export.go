package questionbank

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// WriteExport writes a human-readable document of the bank: a Questions
// section with lettered options followed by an Answers section, both in bank
// order.
func WriteExport(w io.Writer, b *Bank) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "Questions")
	fmt.Fprintln(bw, strings.Repeat("=", 9))
	fmt.Fprintln(bw)
	for i, q := range b.questions {
		fmt.Fprintf(bw, "%d. [%s] %s\n", i+1, q.Category, q.Prompt)
		for j, opt := range q.Options {
			fmt.Fprintf(bw, "   %s) %s\n", OptionLetter(j), opt)
		}
		fmt.Fprintln(bw)
	}

	fmt.Fprintln(bw, "Answers")
	fmt.Fprintln(bw, strings.Repeat("=", 7))
	fmt.Fprintln(bw)
	for i, q := range b.questions {
		fmt.Fprintf(bw, "%d. %s) %s\n", i+1, OptionLetter(q.CorrectIndex), q.CorrectOption())
		if q.Explanation != "" {
			fmt.Fprintf(bw, "   %s\n", q.Explanation)
		}
		fmt.Fprintln(bw)
	}

	return bw.Flush()
}
