// Package cli drives the interactive and batch correction frontends for DBG and everyday use
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/arlochr/spellserve/internal/utils"
	"github.com/arlochr/spellserve/pkg/config"
	"github.com/arlochr/spellserve/pkg/dictionary"
	"github.com/arlochr/spellserve/pkg/spell"
	"github.com/arlochr/spellserve/pkg/tokenizer"
)

// Session processes user text against the engine. Interactive mode
// prompts for replacements word by word, batch mode reports every
// misspelling with its line and column.
type Session struct {
	checker      *spell.Checker
	dict         *dictionary.Dictionary
	suggestLimit int
	maxWordLen   int
	noFilter     bool

	wordsChecked int
	misspellings int
	corrections  int

	in  *bufio.Reader
	out io.Writer
}

// NewSession handles initialization of the Session with config values
func NewSession(checker *spell.Checker, dict *dictionary.Dictionary, cfg *config.Config) *Session {
	return &Session{
		checker:      checker,
		dict:         dict,
		suggestLimit: cfg.CLI.SuggestLimit,
		maxWordLen:   cfg.Server.MaxWordLength,
		noFilter:     cfg.CLI.NoFilter,
		in:           bufio.NewReader(os.Stdin),
		out:          os.Stdout,
	}
}

// Start begins the interactive loop.
// It continuously prompts for input, reads a line from stdin, checks
// every word and offers corrections for the ones that miss.
// Loop terminates on exit, quit, Ctrl+D or a read error.
func (s *Session) Start() error {
	log.Print("SpellServe CLI [BETA]")
	log.Printf("dictionary: %s words", utils.FormatWithCommas(s.dict.Size()))
	log.Print("type a line and press Enter to check it (exit to quit):")

	for {
		log.Print("> ")
		line, err := s.in.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				break
			}
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			break
		}

		corrected, changed := s.correctLine(line)
		if changed {
			log.Printf("corrected: %s", corrected)
		} else {
			log.Print("all good")
		}
	}

	log.Printf("session: %s words checked, %d misspellings, %d corrections",
		utils.FormatWithCommas(s.wordsChecked), s.misspellings, s.corrections)
	return nil
}

// correctLine checks each word of line, prompting for replacements on
// misses. Rebuilds the line from its fields, so runs of whitespace
// collapse to single spaces.
func (s *Session) correctLine(line string) (string, bool) {
	fields := tokenizer.Fields(line)
	changed := false

	for i, raw := range fields {
		tok := tokenizer.Split(raw)
		if s.skippable(tok.Core) {
			continue
		}

		s.wordsChecked++
		res := s.checker.Check(strings.ToLower(tok.Core))
		if res.Valid {
			continue
		}
		s.misspellings++

		replacement := s.promptReplacement(tok.Core, res.Suggestions)
		if replacement == "" {
			continue
		}
		fields[i] = tok.Rejoin(tokenizer.MatchCase(tok.Core, replacement))
		s.corrections++
		changed = true
	}
	return strings.Join(fields, " "), changed
}

// promptReplacement lists ranked suggestions and reads the user's
// pick: a number takes that suggestion, any other text is used
// verbatim, Enter keeps the original word.
func (s *Session) promptReplacement(word string, suggestions []spell.Suggestion) string {
	if len(suggestions) == 0 {
		log.Warnf("No suggestions found for '%s'", word)
		return ""
	}
	if len(suggestions) > s.suggestLimit {
		suggestions = suggestions[:s.suggestLimit]
	}

	log.Printf("'%s' is not in the dictionary:", word)
	for i, sug := range suggestions {
		clWord := fmt.Sprintf("\033[38;5;75m%s\033[0m", sug.Word)
		log.Printf("%2d. %-40s (dist: %d)", i+1, clWord, sug.Distance)
	}
	log.Print("pick a number, type a replacement, or press Enter to keep: ")

	choice, err := s.in.ReadString('\n')
	if err != nil {
		return ""
	}
	choice = strings.TrimSpace(choice)
	if choice == "" {
		return ""
	}

	// A digit-only answer is a pick, anything else replaces the word
	if utils.IsOnlyNumbers(choice) {
		if n, convErr := strconv.Atoi(choice); convErr == nil && n >= 1 && n <= len(suggestions) {
			return suggestions[n-1].Word
		}
		log.Errorf("No suggestion %s", choice)
		return ""
	}
	return choice
}

// CheckStream reads lines from r and reports each misspelling to the
// session output as line:col: "word" -> candidates. Returns how many
// misspellings were found.
func (s *Session) CheckStream(r io.Reader) (int, error) {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	found := 0

	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		cursor := 0

		for _, raw := range tokenizer.Fields(line) {
			idx := strings.Index(line[cursor:], raw)
			col := cursor + idx + 1
			cursor += idx + len(raw)

			tok := tokenizer.Split(raw)
			if s.skippable(tok.Core) {
				continue
			}

			s.wordsChecked++
			res := s.checker.Check(strings.ToLower(tok.Core))
			if res.Valid {
				continue
			}
			found++
			s.misspellings++

			if len(res.Suggestions) == 0 {
				fmt.Fprintf(s.out, "%d:%d: %q no suggestions\n", lineNo, col, tok.Core)
				continue
			}
			words := make([]string, 0, min(len(res.Suggestions), s.suggestLimit))
			for i, sug := range res.Suggestions {
				if i >= s.suggestLimit {
					break
				}
				words = append(words, tokenizer.MatchCase(tok.Core, sug.Word))
			}
			fmt.Fprintf(s.out, "%d:%d: %q -> %s\n", lineNo, col, tok.Core, strings.Join(words, ", "))
		}
	}
	if err := scanner.Err(); err != nil {
		return found, err
	}

	log.Debugf("Checked %d lines, found %d misspellings", lineNo, found)
	return found, nil
}

// skippable filters out tokens the engine has no business judging
func (s *Session) skippable(core string) bool {
	if core == "" {
		return true
	}
	if utils.ExceedsLength(core, s.maxWordLen) {
		log.Debugf("Skipping overlong token '%s'", core)
		return true
	}
	if s.noFilter {
		return false
	}
	return !utils.IsCheckable(core)
}
