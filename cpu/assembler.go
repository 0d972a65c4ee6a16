package cpu

import (
	"bufio"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/sirupsen/logrus"
)

// Source supplies the lines of an included file.
type Source interface {
	Lines(name string) (lines []string, err error)
}

// Assembler parses JV-80 assembly source into an Image.
//
// Parsing is a single pass: labels are bound to the address reached when
// they are declared, and references to them are resolved when the image is
// assembled.
type Assembler struct {
	Verbose bool   // If set, logs every line, segment and include.
	Source  Source // Provider of .include files.
	Image   *Image // Image being built.

	predefine map[string]int
	includes  []string
	file      string
	lineno    int
}

// Predefine defines a constant before any source is parsed.
func (asm *Assembler) Predefine(name string, value int) {
	if asm.predefine == nil {
		asm.predefine = map[string]int{name: value}
	} else {
		asm.predefine[name] = value
	}
}

// Reset discards the image and starts a new assembly unit.
func (asm *Assembler) Reset() {
	asm.Image = NewImage()
	asm.includes = nil
	asm.file = ""
	asm.lineno = 0

	for _, name := range slices.Sorted(maps.Keys(asm.predefine)) {
		err := asm.Image.Add(Entry{Kind: KIND_DEFINE, Name: name, Value: asm.predefine[name]})
		if err != nil {
			asm.Image.Error(err)
		}
	}
}

func (asm *Assembler) log() *logrus.Entry {
	fields := logrus.Fields{"line": asm.lineno}
	if len(asm.file) != 0 {
		fields["file"] = asm.file
	}
	if asm.Image != nil {
		fields["address"] = asm.Image.CurrentAddress()
	}
	return logrus.WithFields(fields)
}

// error records a parse error at the current line.
func (asm *Assembler) error(line string, err error) {
	asm.Image.Error(&ErrSyntax{File: asm.file, LineNo: asm.lineno, Line: strings.TrimSpace(line), Err: err})
}

// Parse parses an input stream into the image. name is the file name used
// in diagnostics, and may be empty. Errors are collected rather than
// stopping the parse; the returned error combines all errors so far.
func (asm *Assembler) Parse(name string, input io.Reader) (err error) {
	if asm.Image == nil {
		asm.Reset()
	}

	var lines []string
	scanner := bufio.NewScanner(input)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	err = scanner.Err()
	if err != nil {
		asm.Image.Error(err)
		return asm.Image.Err()
	}

	asm.parseLines(name, lines)

	return asm.Image.Err()
}

// ParseFile parses a file obtained from the Source.
func (asm *Assembler) ParseFile(name string) (err error) {
	if asm.Image == nil {
		asm.Reset()
	}

	err = asm.include(name)
	if err != nil {
		asm.Image.Error(err)
	}

	return asm.Image.Err()
}

// Assemble resolves labels and produces the program.
func (asm *Assembler) Assemble() (prog *Program, err error) {
	if asm.Image == nil {
		asm.Reset()
	}
	return asm.Image.Assemble()
}

// parseLines parses the lines of one file.
func (asm *Assembler) parseLines(name string, lines []string) {
	file, lineno := asm.file, asm.lineno
	defer func() {
		asm.file, asm.lineno = file, lineno
	}()

	if len(name) != 0 {
		asm.includes = append(asm.includes, name)
		defer func() {
			asm.includes = asm.includes[:len(asm.includes)-1]
		}()
	}

	asm.file = name
	for n, line := range lines {
		asm.lineno = n + 1
		asm.parseLine(line)
	}
}

// values returns the labels and defines visible to $(...) expressions.
func (asm *Assembler) values() map[string]int {
	values := maps.Collect(asm.Image.Labels.All())
	values["LINENO"] = asm.lineno
	values["HERE"] = asm.Image.CurrentAddress()
	return values
}

// parseLine parses a single source line.
func (asm *Assembler) parseLine(line string) {
	if asm.Verbose {
		asm.log().Debug(line)
	}

	var values map[string]int
	text, err := mapCode(line, func(code string) (string, error) {
		if !strings.Contains(code, "$(") {
			return code, nil
		}
		if values == nil {
			values = asm.values()
		}
		return expand(code, values)
	})
	if err != nil {
		asm.error(line, err)
		return
	}

	tokens, err := Split(text)
	if err != nil {
		asm.error(line, err)
		return
	}

	asm.parseTokens(line, tokens)
}

// parseTokens dispatches a tokenized line to label, directive or
// instruction handling.
func (asm *Assembler) parseTokens(line string, tokens []string) {
	for len(tokens) > 0 && strings.HasSuffix(tokens[0], ":") {
		name := strings.TrimSuffix(tokens[0], ":")
		err := asm.Image.Add(Entry{Kind: KIND_LABEL, File: asm.file, LineNo: asm.lineno, Name: name})
		if err != nil {
			asm.error(line, err)
		}
		tokens = tokens[1:]
	}

	if len(tokens) == 0 {
		return
	}

	var err error
	if directive, ok := strings.CutPrefix(tokens[0], "."); ok {
		err = asm.directive(directive, tokens[1:]...)
	} else {
		err = asm.mnemonic(tokens[0], tokens[1:]...)
	}
	if err != nil {
		asm.error(line, err)
	}
}

// mnemonic builds the entry for an instruction or data mnemonic.
func (asm *Assembler) mnemonic(mnemonic string, args ...string) (err error) {
	fam, ok := LookupMnemonic(mnemonic)
	if !ok {
		err = ErrMnemonicUnknown(mnemonic)
		return
	}

	var entry Entry
	switch fam {
	case FAMILY_DATA:
		entry, err = NewData(mnemonic, args...)
	case FAMILY_STRING:
		entry, err = NewString(mnemonic, args...)
	default:
		var inst *Instruction
		inst, err = NewInstruction(mnemonic, args...)
		entry = Entry{Kind: KIND_INSTRUCTION, Instruction: inst}
	}
	if err != nil {
		return
	}

	entry.File = asm.file
	entry.LineNo = asm.lineno

	return asm.Image.Add(entry)
}

// directive handles .segment, .define and .include.
func (asm *Assembler) directive(directive string, args ...string) (err error) {
	switch directive {
	case "segment":
		if len(args) != 1 {
			err = ErrSegmentSyntax
			return
		}
		var addr int
		addr, err = parseAddress(args[0])
		if err != nil {
			return
		}
		seg := asm.Image.NewSegment(addr)
		if asm.Verbose {
			asm.log().Debug(seg.String())
		}
	case "define":
		if len(args) != 2 {
			err = ErrDefineSyntax
			return
		}
		var value int
		value, err = parseAddress(args[1])
		if err != nil {
			return
		}
		err = asm.Image.Add(Entry{Kind: KIND_DEFINE, File: asm.file, LineNo: asm.lineno, Name: args[0], Value: value})
	case "include":
		if len(args) != 1 {
			err = ErrIncludeSyntax
			return
		}
		name, _ := unquote(args[0])
		err = asm.Image.Add(Entry{Kind: KIND_INCLUDE, File: asm.file, LineNo: asm.lineno, Text: name})
		if err != nil {
			return
		}
		err = asm.include(name)
	default:
		err = ErrDirectiveUnknown(directive)
	}

	return
}

// include parses a file from the Source in place.
func (asm *Assembler) include(name string) (err error) {
	if slices.Contains(asm.includes, name) {
		err = ErrIncludeCycle(name)
		return
	}

	if asm.Source == nil {
		err = ErrSourceMissing
		return
	}

	lines, err := asm.Source.Lines(name)
	if err != nil {
		return
	}

	if asm.Verbose {
		asm.log().Debugf(".include %v", name)
	}

	asm.parseLines(name, lines)

	return
}
