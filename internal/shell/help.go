package shell

import (
	"github.com/charmbracelet/glamour"
)

const helpMarkdown = `# roster shell

| Command | Effect |
|---|---|
| ` + "`add key=value ...`" + ` | set fields on the draft and submit it |
| ` + "`set key=value ...`" + ` | set fields on the draft without submitting |
| ` + "`form`" + ` | show the draft |
| ` + "`clear`" + ` | empty the draft |
| ` + "`filter <role>`" + ` | show only one role; ` + "`filter`" + ` or ` + "`filter --all`" + ` shows everyone |
| ` + "`list`" + ` | print the counter and the list |
| ` + "`count`" + ` | print the counter |
| ` + "`roles`" + ` | print the roles that can be filtered on |
| ` + "`rm <email or #>`" + ` | delete after confirmation |
| ` + "`help`" + ` | this text |
| ` + "`quit`" + ` | leave |

Fields: name, surname, birth, email, contact, phone, role. Quote values with
spaces: ` + "`add name=\"Ana Maria\" email=ana@x.com role=Aluno`" + `.
Name, email and role are required.
`

// renderHelp renders the command reference with glamour. style is a glamour
// standard style name such as "dark" or "notty".
func renderHelp(style string, width int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	return r.Render(helpMarkdown)
}
