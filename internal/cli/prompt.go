package cli

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02 15:04"

type prompter struct {
	in *bufio.Reader
}

func (p *prompter) line(label string) string {
	fmt.Print(label)
	s, _ := p.in.ReadString('\n')
	return strings.TrimSpace(s)
}

// required re-prompts until the answer is non-empty.
func (p *prompter) required(label string) string {
	for {
		if s := p.line(label); s != "" {
			return s
		}
		fmt.Println("a value is required")
	}
}

func (p *prompter) number(label string) int {
	for {
		n, err := strconv.Atoi(p.line(label))
		if err == nil {
			return n
		}
		fmt.Println("enter a whole number")
	}
}

func (p *prompter) date(label string) time.Time {
	for {
		t, err := time.ParseInLocation(dateLayout, p.line(label+" (yyyy-mm-dd hh:mm): "), time.Local)
		if err == nil {
			return t
		}
		fmt.Println("enter the date as yyyy-mm-dd hh:mm")
	}
}
