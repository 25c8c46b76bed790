package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/hazadus/cdinventory/internal/data"
	"github.com/hazadus/cdinventory/internal/storage"
)

// runShell запускает меню на заданном вводе и возвращает сессию и вывод
func runShell(t *testing.T, dataFile, input string) (*Session, string) {
	t.Helper()

	var out bytes.Buffer
	session := NewSession(dataFile)
	sh := New(session, NewLinePrompter(strings.NewReader(input), &out), &out)

	if err := sh.Run(context.Background()); err != nil {
		t.Fatalf("Неожиданная ошибка меню: %v", err)
	}
	return session, out.String()
}

// lastTable возвращает последнюю выведенную таблицу вместе с заголовком и подвалом
func lastTable(output string) string {
	const header = "======= The Current Inventory: ======="
	const footer = "======================================"
	table := output[strings.LastIndex(output, header):]
	return table[:strings.Index(table, footer)+len(footer)]
}

func TestScenarioAddDeleteSaveLoad(t *testing.T) {
	dataFile := filepath.Join(t.TempDir(), "CDInventory.dat")

	input := strings.Join([]string{
		"a", "1", "Abbey Road", "The Beatles",
		"a", "2", "Rumours", "Fleetwood Mac",
		"d", "1",
		"s", "y",
		"l", "yes",
		"x",
	}, "\n") + "\n"

	session, output := runShell(t, dataFile, input)

	want := []data.Record{{ID: 2, Title: "Rumours", Artist: "Fleetwood Mac"}}
	if !reflect.DeepEqual(session.Inventory.Records, want) {
		t.Errorf("Ожидалось %+v, получено %+v", want, session.Inventory.Records)
	}

	for _, expected := range []string{
		"File does not exist! Data not loaded!",
		"1\tAbbey Road (by: The Beatles)",
		"The CD was removed",
		"reloading...",
		"2\tRumours (by: Fleetwood Mac)",
	} {
		if !strings.Contains(output, expected) {
			t.Errorf("Вывод не содержит ожидаемую строку '%s'", expected)
		}
	}

	// Последняя таблица после перезагрузки содержит только диск 2
	last := lastTable(output)
	if strings.Contains(last, "Abbey Road") {
		t.Errorf("После перезагрузки в таблице остался удаленный диск: %s", last)
	}

	loaded := data.NewInventory()
	if err := storage.Load(dataFile, loaded); err != nil {
		t.Fatalf("Ошибка загрузки сохраненного файла: %v", err)
	}
	if !reflect.DeepEqual(loaded.Records, want) {
		t.Errorf("В файле ожидалось %+v, получено %+v", want, loaded.Records)
	}
}

func TestAddShowsRecordLast(t *testing.T) {
	dataFile := filepath.Join(t.TempDir(), "CDInventory.dat")
	inv := data.NewInventory()
	inv.Add(data.Record{ID: 10, Title: "Blue", Artist: "Joni Mitchell"})
	if err := storage.Save(dataFile, inv); err != nil {
		t.Fatalf("Ошибка сохранения: %v", err)
	}

	_, output := runShell(t, dataFile, "a\n3\nAbbey Road\nThe Beatles\nx\n")

	table := lastTable(output)
	lines := strings.Split(table, "\n")
	// заголовок, подпись колонок, пустая строка, записи, подвал
	if len(lines) < 2 {
		t.Fatalf("Неожиданный формат таблицы: %q", table)
	}
	if got := lines[len(lines)-2]; got != "3\tAbbey Road (by: The Beatles)" {
		t.Errorf("Ожидалось, что новый диск выводится последним, получено: %q", got)
	}
}

func TestAddRepromptsForNonIntegerID(t *testing.T) {
	dataFile := filepath.Join(t.TempDir(), "CDInventory.dat")

	session, output := runShell(t, dataFile, "a\nabc\nKind of Blue\nMiles Davis\nxyz\n1.5\n7\nx\n")

	want := []data.Record{{ID: 7, Title: "Kind of Blue", Artist: "Miles Davis"}}
	if !reflect.DeepEqual(session.Inventory.Records, want) {
		t.Errorf("Ожидалось %+v, получено %+v", want, session.Inventory.Records)
	}
	if n := strings.Count(output, "ID entered is not an integer!"); n != 3 {
		t.Errorf("Ожидалось 3 сообщения о неверном ID, получено %d", n)
	}
	if n := strings.Count(output, "Please re-enter the ID as an integer: "); n != 3 {
		t.Errorf("Ожидалось 3 повторных запроса ID, получено %d", n)
	}
}

func TestDeleteRepromptsAndReportsMiss(t *testing.T) {
	dataFile := filepath.Join(t.TempDir(), "CDInventory.dat")

	session, output := runShell(t, dataFile, "a\n1\nA\nB\nd\none\n42\nx\n")

	if !strings.Contains(output, "That is not an integer!") {
		t.Error("Ожидалось сообщение о неверном ID при удалении")
	}
	if !strings.Contains(output, "Could not find this CD!") {
		t.Error("Ожидалось сообщение о ненайденном диске")
	}
	if session.Inventory.Len() != 1 {
		t.Errorf("Инвентарь не должен меняться, получено %d записей", session.Inventory.Len())
	}
}

func TestMenuChoiceIgnoresUnknownInput(t *testing.T) {
	dataFile := filepath.Join(t.TempDir(), "CDInventory.dat")

	_, output := runShell(t, dataFile, "q\n\n  I  \nX\n")

	if n := strings.Count(output, "Which operation would you like to perform?"); n != 4 {
		t.Errorf("Ожидалось 4 запроса команды, получено %d", n)
	}
	if !strings.Contains(output, "======= The Current Inventory: =======") {
		t.Error("Команда ' I ' должна отобразить инвентарь")
	}
	if strings.Contains(output, "General Error") {
		t.Error("Неизвестные команды не должны доходить до обработчика")
	}
}

func TestSaveDeclinedLeavesFileUntouched(t *testing.T) {
	dataFile := filepath.Join(t.TempDir(), "CDInventory.dat")

	_, output := runShell(t, dataFile, "a\n1\nA\nB\ns\nn\n\nx\n")

	if !strings.Contains(output, "The inventory was NOT saved to file.") {
		t.Error("Ожидалось сообщение об отмене сохранения")
	}
	if _, err := os.Stat(dataFile); !os.IsNotExist(err) {
		t.Errorf("Файл не должен создаваться при отказе от сохранения: %v", err)
	}
}

func TestLoadDeclinedKeepsTable(t *testing.T) {
	dataFile := filepath.Join(t.TempDir(), "CDInventory.dat")

	session, output := runShell(t, dataFile, "a\n1\nA\nB\nl\nno\n\nx\n")

	if !strings.Contains(output, "canceling... Inventory data NOT reloaded.") {
		t.Error("Ожидалось сообщение об отмене перезагрузки")
	}
	if session.Inventory.Len() != 1 {
		t.Errorf("Инвентарь не должен меняться при отказе, получено %d записей", session.Inventory.Len())
	}
}

func TestLoadConfirmationIsCaseInsensitive(t *testing.T) {
	dataFile := filepath.Join(t.TempDir(), "CDInventory.dat")

	session, output := runShell(t, dataFile, "a\n1\nA\nB\nl\nYES\nx\n")

	if !strings.Contains(output, "reloading...") {
		t.Error("Ожидалась перезагрузка при ответе YES")
	}
	if session.Inventory.Len() != 0 {
		t.Errorf("Несохраненные данные должны быть потеряны, получено %d записей", session.Inventory.Len())
	}
}

func TestStartupWithCorruptFile(t *testing.T) {
	dataFile := filepath.Join(t.TempDir(), "CDInventory.dat")
	if err := os.WriteFile(dataFile, []byte("not an inventory"), 0644); err != nil {
		t.Fatalf("Ошибка записи тестового файла: %v", err)
	}

	session, output := runShell(t, dataFile, "i\nx\n")

	if !strings.Contains(output, "Data could not be decoded! Data not loaded!") {
		t.Errorf("Ожидалось предупреждение о поврежденном файле: %s", output)
	}
	if session.Inventory.Len() != 0 {
		t.Errorf("Ожидался пустой инвентарь, получено %d записей", session.Inventory.Len())
	}
}

func TestEndOfInputStopsShell(t *testing.T) {
	dataFile := filepath.Join(t.TempDir(), "CDInventory.dat")

	session, _ := runShell(t, dataFile, "a\n1\n")

	if session.Inventory.Len() != 0 {
		t.Errorf("Незавершенное добавление не должно менять инвентарь, получено %d записей", session.Inventory.Len())
	}
}

func TestLastLineWithoutNewline(t *testing.T) {
	dataFile := filepath.Join(t.TempDir(), "CDInventory.dat")

	session, _ := runShell(t, dataFile, "a\n4\nT\nA\nx")

	if session.Inventory.Len() != 1 {
		t.Errorf("Ожидался 1 диск, получено %d", session.Inventory.Len())
	}
}

// failingPrompter всегда возвращает ошибку чтения
type failingPrompter struct {
	calls int
}

func (p *failingPrompter) Prompt(string) (string, error) {
	p.calls++
	return "", errors.New("terminal is gone")
}

func TestInputErrorsAreReportedAndRetried(t *testing.T) {
	var out bytes.Buffer
	prompter := &failingPrompter{}
	sh := New(NewSession(filepath.Join(t.TempDir(), "CDInventory.dat")), prompter, &out)

	err := sh.Run(context.Background())
	if err == nil {
		t.Fatal("Ожидалась ошибка после повторяющихся сбоев ввода")
	}
	if prompter.calls != maxInputFailures {
		t.Errorf("Ожидалось %d попыток чтения, получено %d", maxInputFailures, prompter.calls)
	}
	if n := strings.Count(out.String(), "There is a general error!"); n != maxInputFailures {
		t.Errorf("Ожидалось %d сообщений об ошибке, получено %d", maxInputFailures, n)
	}
	if !strings.Contains(out.String(), "terminal is gone") {
		t.Error("Ожидалась диагностическая информация об ошибке")
	}
}

func TestRenderInventory(t *testing.T) {
	var out bytes.Buffer
	RenderInventory(&out, []data.Record{
		{ID: 2, Title: "Rumours", Artist: "Fleetwood Mac"},
		{ID: 1, Title: "Abbey Road", Artist: "The Beatles"},
	})

	expected := "======= The Current Inventory: =======\n" +
		"ID\tCD Title (by: Artist)\n\n" +
		"2\tRumours (by: Fleetwood Mac)\n" +
		"1\tAbbey Road (by: The Beatles)\n" +
		"======================================\n"
	if out.String() != expected {
		t.Errorf("Ожидалось:\n%s\nполучено:\n%s", expected, out.String())
	}
}

func TestSaveFailureKeepsTableAndMenu(t *testing.T) {
	dataFile := filepath.Join(t.TempDir(), "no", "such", "dir", "CDInventory.dat")

	input := "a\n1\nAbbey Road\nThe Beatles\n" +
		"s\ny\n" +
		"i\n" +
		"x\n"
	session, out := runShell(t, dataFile, input)

	failure := strings.Index(out, "Inventory could not be saved!")
	if failure < 0 {
		t.Fatalf("Ожидалось предупреждение о неудачном сохранении: %s", out)
	}
	if !strings.Contains(out[failure:], "Built in error info:") {
		t.Error("Ожидалась диагностическая информация об ошибке сохранения")
	}

	// После ошибки меню продолжает работу и показывает прежнюю таблицу
	rest := out[failure:]
	if !strings.Contains(rest, "Which operation would you like to perform?") {
		t.Error("Меню должно продолжить работу после ошибки сохранения")
	}
	expected := "======= The Current Inventory: =======\n" +
		"ID\tCD Title (by: Artist)\n\n" +
		"1\tAbbey Road (by: The Beatles)\n" +
		"======================================"
	if table := lastTable(rest); table != expected {
		t.Errorf("Таблица изменилась после ошибки сохранения:\n%s", table)
	}

	if session.Inventory.Len() != 1 {
		t.Errorf("Ожидался 1 диск, получено %d", session.Inventory.Len())
	}
	if _, err := os.Stat(dataFile); !os.IsNotExist(err) {
		t.Error("Файл данных не должен появиться")
	}
}

// blockingPrompter ждет ввода, который никогда не приходит
type blockingPrompter struct {
	release chan struct{}
}

func (p *blockingPrompter) Prompt(string) (string, error) {
	<-p.release
	return "", io.EOF
}

func TestCancelStopsShellWaitingForInput(t *testing.T) {
	prompter := &blockingPrompter{release: make(chan struct{})}
	t.Cleanup(func() { close(prompter.release) })

	var out bytes.Buffer
	sh := New(NewSession(filepath.Join(t.TempDir(), "CDInventory.dat")), prompter, &out)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- sh.Run(ctx)
	}()

	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Ожидалось штатное завершение после отмены, получено: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Меню не завершилось после отмены контекста")
	}
}
