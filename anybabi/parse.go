package anybabi

import (
	"bufio"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var tokenExpr = regexp.MustCompile(`\w+|[^\w\s]+`)

// ParseStories reads examples in the bAbI line format.
//
// Each line starts with a line number; number 1 starts a
// new story.
// Statement lines contain a sentence.
// Question lines contain the question, the answer, and the
// supporting fact numbers, separated by tabs.
//
// The name is only used in error messages.
func ParseStories(r io.Reader, name string) ([]*Example, error) {
	var res []*Example
	var story [][]string

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 1<<16), 1<<20)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.ToLower(strings.TrimRight(scanner.Text(), "\r\n"))
		if strings.TrimSpace(line) == "" {
			continue
		}
		space := strings.IndexByte(line, ' ')
		if space < 0 {
			return nil, errors.Errorf("%s:%d: missing line number", name, lineNum)
		}
		id, err := strconv.Atoi(line[:space])
		if err != nil {
			return nil, errors.Wrapf(err, "%s:%d: bad line number", name, lineNum)
		}
		if id == 1 {
			story = nil
		}
		text := line[space+1:]

		if !strings.Contains(text, "\t") {
			story = append(story, trimToken(Tokenize(text), "."))
			continue
		}

		fields := strings.Split(text, "\t")
		answer := strings.TrimSpace(fields[1])
		if answer == "" {
			return nil, errors.Errorf("%s:%d: missing answer", name, lineNum)
		}
		res = append(res, &Example{
			Story:    append([][]string{}, story...),
			Question: trimToken(Tokenize(fields[0]), "?"),
			Answer:   strings.Split(answer, ","),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, name)
	}
	return res, nil
}

// Tokenize splits a sentence into words and punctuation.
func Tokenize(sentence string) []string {
	return tokenExpr.FindAllString(sentence, -1)
}

func trimToken(tokens []string, last string) []string {
	if len(tokens) > 0 && tokens[len(tokens)-1] == last {
		return tokens[:len(tokens)-1]
	}
	return tokens
}
