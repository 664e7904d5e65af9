package shell

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/zjrosen/roster/internal/registry"
)

var errUnterminatedQuote = errors.New("unterminated quote")

// splitArgs splits a command line on whitespace. Single or double quotes
// group words; quotes may appear mid-word as in name="Ana Maria".
func splitArgs(line string) ([]string, error) {
	var (
		args    []string
		cur     strings.Builder
		quote   rune
		inToken bool
	)
	for _, r := range line {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
				continue
			}
			cur.WriteRune(r)
		case r == '"' || r == '\'':
			quote = r
			inToken = true
		case unicode.IsSpace(r):
			if inToken {
				args = append(args, cur.String())
				cur.Reset()
				inToken = false
			}
		default:
			cur.WriteRune(r)
			inToken = true
		}
	}
	if quote != 0 {
		return nil, errUnterminatedQuote
	}
	if inToken {
		args = append(args, cur.String())
	}
	return args, nil
}

// applyPairs sets form fields from key=value arguments.
func applyPairs(f registry.Fields, pairs []string) (registry.Fields, error) {
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok {
			return f, fmt.Errorf("expected key=value, got %q", p)
		}
		switch strings.ToLower(k) {
		case "name":
			f.Name = v
		case "surname":
			f.Surname = v
		case "birth", "birthdate", "birth_date":
			f.BirthDate = v
		case "email":
			f.Email = v
		case "contact":
			f.Contact = v
		case "phone":
			f.Phone = v
		case "role":
			f.Role = v
		default:
			return f, fmt.Errorf("unknown field %q", k)
		}
	}
	return f, nil
}
