// Package shell реализует интерактивное меню управления инвентарем
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hazadus/cdinventory/internal/codec"
	"github.com/hazadus/cdinventory/internal/data"
	"github.com/hazadus/cdinventory/internal/storage"
)

// maxInputFailures ограничивает количество подряд идущих ошибок чтения ввода
const maxInputFailures = 3

// errQuit сигнализирует о завершении работы меню
var errQuit = errors.New("выход")

var menuChoices = []string{"l", "a", "i", "d", "s", "x"}

// Session хранит состояние текущей сессии: инвентарь и путь к файлу
type Session struct {
	Inventory *data.Inventory
	DataFile  string
}

// NewSession создает сессию с пустым инвентарем
func NewSession(dataFile string) *Session {
	return &Session{
		Inventory: data.NewInventory(),
		DataFile:  dataFile,
	}
}

// Shell обслуживает цикл меню
type Shell struct {
	session  *Session
	prompter Prompter
	out      io.Writer
}

// New создает новое меню для сессии
func New(session *Session, prompter Prompter, out io.Writer) *Shell {
	return &Shell{
		session:  session,
		prompter: prompter,
		out:      out,
	}
}

// Run загружает инвентарь из файла и обслуживает меню до команды выхода,
// окончания ввода или отмены ctx. Ошибка возвращается только если ввод
// перестал читаться.
func (s *Shell) Run(ctx context.Context) error {
	s.load()

	for {
		s.printMenu()
		choice, err := s.menuChoice(ctx)
		if err != nil {
			return quitErr(err)
		}

		if err := s.dispatch(ctx, choice); err != nil {
			return quitErr(err)
		}
	}
}

func quitErr(err error) error {
	if errors.Is(err, errQuit) {
		return nil
	}
	return err
}

func (s *Shell) dispatch(ctx context.Context, choice string) error {
	switch choice {
	case "x":
		return errQuit
	case "l":
		return s.reload(ctx)
	case "a":
		return s.add(ctx)
	case "i":
		s.ShowInventory()
		return nil
	case "d":
		return s.delete(ctx)
	case "s":
		return s.save(ctx)
	default:
		fmt.Fprintln(s.out, "General Error")
		return nil
	}
}

func (s *Shell) printMenu() {
	fmt.Fprint(s.out, "Menu\n\n[l] Load Inventory from File\n[a] Add CD\n[i] Display Current Inventory\n")
	fmt.Fprint(s.out, "[d] Delete CD from Inventory\n[s] Save Inventory to File\n[x] Exit\n\n")
}

func (s *Shell) menuChoice(ctx context.Context) (string, error) {
	for {
		choice, err := s.readLine(ctx, "Which operation would you like to perform? [l, a, i, d, s or x]: ")
		if err != nil {
			return "", err
		}
		choice = strings.ToLower(strings.TrimSpace(choice))
		for _, c := range menuChoices {
			if choice == c {
				fmt.Fprintln(s.out)
				return choice, nil
			}
		}
	}
}

// ShowInventory выводит таблицу дисков в порядке инвентаря
func (s *Shell) ShowInventory() {
	RenderInventory(s.out, s.session.Inventory.Records)
}

// RenderInventory выводит таблицу дисков в w
func RenderInventory(w io.Writer, records []data.Record) {
	fmt.Fprintln(w, "======= The Current Inventory: =======")
	fmt.Fprint(w, "ID\tCD Title (by: Artist)\n\n")
	for _, r := range records {
		fmt.Fprintf(w, "%d\t%s (by: %s)\n", r.ID, r.Title, r.Artist)
	}
	fmt.Fprintln(w, "======================================")
}

// load перечитывает инвентарь из файла, сообщая о проблемах без остановки работы
func (s *Shell) load() {
	err := storage.Load(s.session.DataFile, s.session.Inventory)
	if err == nil {
		return
	}

	switch {
	case errors.Is(err, storage.ErrNotExist):
		fmt.Fprintln(s.out, "File does not exist! Data not loaded!")
	case errors.Is(err, codec.ErrCorrupt):
		fmt.Fprintln(s.out, "Data could not be decoded! Data not loaded!")
	default:
		fmt.Fprintln(s.out, "Data could not be read! Data not loaded!")
	}
	s.reportError(err)
}

func (s *Shell) reload(ctx context.Context) error {
	fmt.Fprintln(s.out, "WARNING: If you continue, all unsaved data will be lost and the Inventory re-loaded from file.")
	answer, err := s.readLine(ctx, "type 'yes' to continue and reload from file. otherwise reload will be canceled: ")
	if err != nil {
		return err
	}

	if strings.ToLower(strings.TrimSpace(answer)) == "yes" {
		fmt.Fprintln(s.out, "reloading...")
		s.load()
		s.ShowInventory()
		return nil
	}

	if _, err := s.readLine(ctx, "canceling... Inventory data NOT reloaded. Press [ENTER] to continue to the menu."); err != nil {
		return err
	}
	s.ShowInventory()
	return nil
}

func (s *Shell) add(ctx context.Context) error {
	rawID, err := s.readLine(ctx, "Enter ID: ")
	if err != nil {
		return err
	}
	title, err := s.readLine(ctx, "What is the CD's title? ")
	if err != nil {
		return err
	}
	artist, err := s.readLine(ctx, "What is the Artist's name? ")
	if err != nil {
		return err
	}

	id, err := s.parseID(ctx, rawID, "ID entered is not an integer!", "Please re-enter the ID as an integer: ")
	if err != nil {
		return err
	}

	s.session.Inventory.Add(data.Record{
		ID:     id,
		Title:  strings.TrimSpace(title),
		Artist: strings.TrimSpace(artist),
	})
	s.ShowInventory()
	return nil
}

func (s *Shell) delete(ctx context.Context) error {
	s.ShowInventory()

	const prompt = "Which ID would you like to delete? "
	rawID, err := s.readLine(ctx, prompt)
	if err != nil {
		return err
	}
	id, err := s.parseID(ctx, rawID, "That is not an integer!", prompt)
	if err != nil {
		return err
	}

	if s.session.Inventory.Delete(id) {
		fmt.Fprintln(s.out, "The CD was removed")
	} else {
		fmt.Fprintln(s.out, "Could not find this CD!")
	}
	s.ShowInventory()
	return nil
}

func (s *Shell) save(ctx context.Context) error {
	s.ShowInventory()

	answer, err := s.readLine(ctx, "Save this inventory to file? [y/n] ")
	if err != nil {
		return err
	}

	if strings.ToLower(strings.TrimSpace(answer)) == "y" {
		if err := storage.Save(s.session.DataFile, s.session.Inventory); err != nil {
			fmt.Fprintln(s.out, "Inventory could not be saved!")
			s.reportError(err)
			return nil
		}
		fmt.Fprintf(s.out, "Inventory saved to %s\n", s.session.DataFile)
		return nil
	}

	_, err = s.readLine(ctx, "The inventory was NOT saved to file. Press [ENTER] to return to the menu.")
	return err
}

// parseID повторяет запрос, пока введенное значение не станет целым числом
func (s *Shell) parseID(ctx context.Context, raw, complaint, retryPrompt string) (int, error) {
	for {
		id, err := strconv.Atoi(strings.TrimSpace(raw))
		if err == nil {
			return id, nil
		}

		fmt.Fprintln(s.out, complaint)
		s.reportError(err)

		raw, err = s.readLine(ctx, retryPrompt)
		if err != nil {
			return 0, err
		}
	}
}

// readLine читает ответ пользователя. Ошибки чтения выводятся и запрос
// повторяется; конец ввода или отмена ctx завершают меню.
func (s *Shell) readLine(ctx context.Context, prompt string) (string, error) {
	failures := 0
	for {
		line, err := s.prompt(ctx, prompt)
		if err == nil {
			return line, nil
		}
		if ctx.Err() != nil || errors.Is(err, io.EOF) {
			fmt.Fprintln(s.out)
			return "", errQuit
		}

		failures++
		fmt.Fprintln(s.out, "There is a general error!")
		s.reportError(err)
		if failures >= maxInputFailures {
			return "", fmt.Errorf("ошибка чтения ввода: %w", err)
		}
	}
}

type promptResult struct {
	line string
	err  error
}

// prompt ждет ответа пользователя или отмены ctx.
// Чтение, прерванное отменой, продолжается в фоне до конца строки.
func (s *Shell) prompt(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	result := make(chan promptResult, 1)
	go func() {
		line, err := s.prompter.Prompt(prompt)
		result <- promptResult{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-result:
		return r.line, r.err
	}
}

func (s *Shell) reportError(err error) {
	fmt.Fprintln(s.out, "Built in error info:")
	fmt.Fprintf(s.out, "%T\n%v\n", err, err)
}
