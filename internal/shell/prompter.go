package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Prompter читает ответ пользователя на приглашение
type Prompter interface {
	Prompt(prompt string) (string, error)
}

// LinePrompter построчно читает ответы из потока ввода
type LinePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewLinePrompter создает Prompter поверх потоков ввода и вывода
func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Prompt выводит приглашение и возвращает введенную строку без перевода строки.
// Последняя строка без перевода строки возвращается без ошибки, io.EOF
// возвращается только когда ввод закончился.
func (p *LinePrompter) Prompt(prompt string) (string, error) {
	if _, err := fmt.Fprint(p.out, prompt); err != nil {
		return "", fmt.Errorf("ошибка вывода приглашения: %w", err)
	}

	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
