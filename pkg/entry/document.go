package entry

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/JesusMMA96/sap-autoentry/pkg/scripting"
	"github.com/JesusMMA96/sap-autoentry/pkg/terminal"
)

// statusDrainLimit bounds the confirmation loop that clears pending
// status messages before printing. A terminal that keeps producing
// messages beyond this is stuck.
const statusDrainLimit = 10

// DocumentNumber reads the number of the document the terminal just
// posted. When the document-display screen is not showing, it is
// reopened through its transaction first.
func (b *Builder) DocumentNumber() (string, error) {
	sess, err := b.sessions.Session()
	if err != nil {
		return "", err
	}

	onDisplay, err := b.probe.OnScreen(terminal.TitleDocumentDisplay)
	if err != nil {
		return "", err
	}
	if !onDisplay {
		if err := b.nav.ReturnHome(); err != nil {
			return "", err
		}
		if err := b.nav.OpenTransaction(TxnDisplayDocument); err != nil {
			return "", err
		}
	}

	number, err := terminal.ReadText(sess, idDocumentNumber)
	if err != nil {
		return "", fmt.Errorf("read document number: %w", err)
	}
	return strings.TrimSpace(number), nil
}

// ArchiveSpool prints the posted document without preview, locates its
// spool output by document-number title, and saves it as
// {documentNumber}.pdf under dir. The terminal is returned home.
func (b *Builder) ArchiveSpool(dir string) error {
	sess, err := b.sessions.Session()
	if err != nil {
		return err
	}

	number, err := b.DocumentNumber()
	if err != nil {
		return err
	}
	if number == "" {
		return &ValidationError{Field: "document number", Reason: "no document number available"}
	}

	// Clear pending status messages before opening the print dialog.
	if err := terminal.SendVKey(sess, idMainWindow, scripting.VKeyEnter); err != nil {
		return fmt.Errorf("archive spool: %w", err)
	}
	for i := 0; b.probe.StatusMessage() != "" && i < statusDrainLimit; i++ {
		if err := terminal.SendVKey(sess, idMainWindow, scripting.VKeyEnter); err != nil {
			return fmt.Errorf("archive spool: %w", err)
		}
	}

	// Print with preview disabled.
	if err := terminal.Press(sess, idPrintButton); err != nil {
		return fmt.Errorf("archive spool: %w", err)
	}
	immediate, err := sess.FindByID(idPrintImmediate)
	if err != nil {
		return fmt.Errorf("archive spool: %w", err)
	}
	if err := immediate.SetFocus(); err != nil {
		return fmt.Errorf("archive spool: %w", err)
	}
	if err := immediate.SetKey(""); err != nil {
		return fmt.Errorf("archive spool: %w", err)
	}
	if err := terminal.Press(sess, idPrintContinue); err != nil {
		return fmt.Errorf("archive spool: %w", err)
	}
	if err := terminal.SendVKey(sess, idMainWindow, scripting.VKeyEnter); err != nil {
		return fmt.Errorf("archive spool: %w", err)
	}

	// Locate the spool entry by document-number title.
	if err := b.nav.ReturnHome(); err != nil {
		return err
	}
	if err := b.nav.OpenTransaction(TxnSpoolList); err != nil {
		return err
	}
	if err := terminal.SendVKey(sess, idMainWindow, scripting.VKeyF8); err != nil {
		return fmt.Errorf("archive spool: %w", err)
	}
	first, err := sess.FindByID(idSpoolFirstEntry)
	if err != nil {
		return fmt.Errorf("archive spool: %w", err)
	}
	if err := first.SetFocus(); err != nil {
		return fmt.Errorf("archive spool: %w", err)
	}
	if err := terminal.SendVKey(sess, idMainWindow, scripting.VKeyF2); err != nil {
		return fmt.Errorf("archive spool: %w", err)
	}
	if err := terminal.SetText(sess, idSpoolTitle, number); err != nil {
		return fmt.Errorf("archive spool: %w", err)
	}
	if err := terminal.Press(sess, idSpoolExecute); err != nil {
		return fmt.Errorf("archive spool: %w", err)
	}

	// Open the spool, select the output and save it.
	if err := terminal.Press(sess, idSpoolOpen); err != nil {
		return fmt.Errorf("archive spool: %w", err)
	}
	output, err := sess.FindByID(idSpoolOutput)
	if err != nil {
		return fmt.Errorf("archive spool: %w", err)
	}
	if err := output.SetSelected(true); err != nil {
		return fmt.Errorf("archive spool: %w", err)
	}
	if err := output.SetFocus(); err != nil {
		return fmt.Errorf("archive spool: %w", err)
	}
	if err := selectMenu(sess, idSpoolSaveMenu); err != nil {
		return fmt.Errorf("archive spool: %w", err)
	}

	if err := terminal.SetText(sess, idSavePath, dir); err != nil {
		return fmt.Errorf("archive spool: %w", err)
	}
	if err := terminal.SetText(sess, idSaveFilename, number+".pdf"); err != nil {
		return fmt.Errorf("archive spool: %w", err)
	}
	if err := terminal.Press(sess, idSaveConfirm); err != nil {
		return fmt.Errorf("archive spool: %w", err)
	}

	slog.Info("Spool archived", "document", number, "dir", dir)
	return b.nav.ReturnHome()
}
