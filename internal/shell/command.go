package shell

import (
	"strconv"
	"strings"
)

// Kind identifies a shell command.
type Kind int

const (
	// CmdNone is an empty or all-whitespace line.
	CmdNone Kind = iota
	// CmdUnknown is a line whose first word is not a command.
	CmdUnknown
	CmdList
	CmdStart
	CmdShutdown
	CmdSuspend
	CmdResume
	CmdExport
	CmdImport
	CmdInfo
	CmdConnect
	CmdQuit
)

// anyArgs marks a command that ignores its argument count.
const anyArgs = -1

var kindNames = map[Kind]string{
	CmdNone:     "",
	CmdUnknown:  "unknown",
	CmdList:     "list",
	CmdStart:    "start",
	CmdShutdown: "shutdown",
	CmdSuspend:  "suspend",
	CmdResume:   "resume",
	CmdExport:   "export",
	CmdImport:   "import",
	CmdInfo:     "info",
	CmdConnect:  "connect",
	CmdQuit:     "quit",
}

// commandWords maps the first word of a line to its command.
var commandWords = map[string]Kind{
	"list":     CmdList,
	"start":    CmdStart,
	"shutdown": CmdShutdown,
	"suspend":  CmdSuspend,
	"resume":   CmdResume,
	"export":   CmdExport,
	"import":   CmdImport,
	"info":     CmdInfo,
	"connect":  CmdConnect,
	"quit":     CmdQuit,
	"exit":     CmdQuit,
}

// arity is the exact number of arguments each command takes.
var arity = map[Kind]int{
	CmdList:     anyArgs,
	CmdStart:    1,
	CmdShutdown: 1,
	CmdSuspend:  1,
	CmdResume:   1,
	CmdExport:   1,
	CmdImport:   1,
	CmdInfo:     1,
	CmdConnect:  1,
	CmdQuit:     anyArgs,
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Command is a tokenized input line.
type Command struct {
	Kind Kind
	// Name is the first word as typed.
	Name string
	Args []string
}

// Parse splits line on whitespace and classifies its first word.
func Parse(line string) Command {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{Kind: CmdNone}
	}

	kind, ok := commandWords[fields[0]]
	if !ok {
		kind = CmdUnknown
	}

	return Command{
		Kind: kind,
		Name: fields[0],
		Args: fields[1:],
	}
}

// ArityOK reports whether the command has the number of arguments it takes.
func (c Command) ArityOK() bool {
	n, ok := arity[c.Kind]
	if !ok {
		return false
	}
	return n == anyArgs || n == len(c.Args)
}
