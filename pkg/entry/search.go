package entry

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/JesusMMA96/sap-autoentry/pkg/prompt"
	"github.com/JesusMMA96/sap-autoentry/pkg/scripting"
	"github.com/JesusMMA96/sap-autoentry/pkg/terminal"
)

// Open-item selection modes accepted by SearchOpenItems. The position
// is the index of the selection radio button on the search screen;
// only these four are wired up.
const (
	SearchAll         = 0
	SearchByAmount    = 1
	SearchByReference = 5
	SearchByDueDate   = 16
)

// searchFields maps a selection mode to its subscreen code and its
// from/to field pair.
var searchFields = map[int]struct {
	subscreen string
	from, to  string
}{
	SearchByAmount:    {"0730", "txtRF05A-VONWT[0,0]", "txtRF05A-BISWT[0,21]"},
	SearchByReference: {"0731", "txtRF05A-SEL01[0,0]", "txtRF05A-SEL02[0,31]"},
	SearchByDueDate:   {"0732", "ctxtRF05A-VONDT[0,0]", "ctxtRF05A-BISDT[0,20]"},
}

// SearchOpenItems filters and selects open items for clearing.
// category is the account category (D customer, K vendor, S G/L);
// searchData and additionalData are the from/to values of the chosen
// range, either optional. After executing, the transition to the
// open-items screen is verified and all matched items are selected
// and activated.
func (b *Builder) SearchOpenItems(category string, position int, searchData, companyCode, account, additionalData string) error {
	sess, err := b.sessions.Session()
	if err != nil {
		return err
	}

	if err := b.ensureScreenWithUser(terminal.TitleSummary, 3); err != nil {
		return err
	}

	if err := terminal.Press(sess, idSearchButton); err != nil {
		return fmt.Errorf("open item search: %w", err)
	}

	if err := terminal.SetText(sess, idSearchCategory, category); err != nil {
		return fmt.Errorf("open item search: %w", err)
	}
	if companyCode != "" {
		if err := terminal.SetText(sess, idSearchCompanyCode, companyCode); err != nil {
			return fmt.Errorf("open item search: %w", err)
		}
	}
	if account != "" {
		if err := terminal.SetText(sess, idSearchAccount, account); err != nil {
			return fmt.Errorf("open item search: %w", err)
		}
	}

	switch {
	case position == SearchAll:
		if err := terminal.SendVKey(sess, idMainWindow, scripting.VKeyEnter); err != nil {
			return fmt.Errorf("open item search: %w", err)
		}

	case searchFields[position].subscreen != "":
		f := searchFields[position]
		radio := fmt.Sprintf("wnd[0]/usr/sub:SAPMF05A:0710/radRF05A-XPOS1[%d,0]", position)
		el, err := sess.FindByID(radio)
		if err != nil {
			return fmt.Errorf("open item search: %w", err)
		}
		if err := el.Select(); err != nil {
			return fmt.Errorf("open item search: %w", err)
		}
		if err := terminal.SendVKey(sess, idMainWindow, scripting.VKeyEnter); err != nil {
			return fmt.Errorf("open item search: %w", err)
		}

		if searchData != "" {
			id := fmt.Sprintf("wnd[0]/usr/sub:SAPMF05A:%s/%s", f.subscreen, f.from)
			if err := terminal.SetText(sess, id, searchData); err != nil {
				return fmt.Errorf("open item search: %w", err)
			}
			if err := terminal.SendVKey(sess, idMainWindow, scripting.VKeyEnter); err != nil {
				return fmt.Errorf("open item search: %w", err)
			}
		}
		if additionalData != "" {
			id := fmt.Sprintf("wnd[0]/usr/sub:SAPMF05A:%s/%s", f.subscreen, f.to)
			if err := terminal.SetText(sess, id, additionalData); err != nil {
				return fmt.Errorf("open item search: %w", err)
			}
			if err := terminal.SendVKey(sess, idMainWindow, scripting.VKeyEnter); err != nil {
				return fmt.Errorf("open item search: %w", err)
			}
		}

		if err := terminal.Press(sess, idSearchExecute); err != nil {
			return fmt.Errorf("open item search: %w", err)
		}

	default:
		b.notify.Info("Open item search", fmt.Sprintf("selection mode %d is not supported", position))
		if err := b.nav.ReturnHome(); err != nil {
			return err
		}
		return &ValidationError{Field: "selection mode", Reason: strconv.Itoa(position) + " not supported"}
	}

	msg := b.probe.StatusMessage()
	if terminal.ClassifyStatus(msg) == terminal.StatusNothingFound {
		b.notify.Info("Open item search", msg)
	}

	onItems, err := b.probe.OnScreen(terminal.TitleOpenItems)
	if err != nil {
		return err
	}
	if !onItems {
		b.notify.Warn("Open item search", "no open items were found")
		if err := b.nav.ReturnHome(); err != nil {
			return err
		}
		return fmt.Errorf("%w: %s", terminal.ErrScreenNotReached, terminal.TitleOpenItems)
	}

	if err := terminal.Press(sess, idSelectAll); err != nil {
		return fmt.Errorf("select open items: %w", err)
	}
	if err := terminal.Press(sess, idActivateItems); err != nil {
		return fmt.Errorf("select open items: %w", err)
	}
	return nil
}

// ReadClearingTotals reads the aggregate figures of the open-items
// screen: item count, items amount, unresolved difference and total.
// A field that cannot be parsed counts as zero. The terminal is left
// on the summary screen.
func (b *Builder) ReadClearingTotals() (ClearingTotals, error) {
	sess, err := b.sessions.Session()
	if err != nil {
		return ClearingTotals{}, err
	}

	err = b.probe.WaitForScreen(terminal.TitleOpenItems, 5, func() error {
		return terminal.Press(sess, terminal.IDOpenItemsButton)
	})
	if err != nil {
		return ClearingTotals{}, err
	}

	if err := terminal.Press(sess, idSelectAll); err != nil {
		return ClearingTotals{}, fmt.Errorf("read clearing totals: %w", err)
	}
	if err := terminal.Press(sess, idActivateItems); err != nil {
		return ClearingTotals{}, fmt.Errorf("read clearing totals: %w", err)
	}

	var totals ClearingTotals
	if raw, err := terminal.ReadText(sess, idItemCount); err == nil {
		totals.ItemCount, _ = strconv.Atoi(strings.TrimSpace(raw))
	}
	if raw, err := terminal.ReadText(sess, idItemsAmount); err == nil {
		totals.ItemsAmount, _ = ParseDisplayAmount(raw)
	}
	if raw, err := terminal.ReadText(sess, idDifference); err == nil {
		totals.Difference, _ = ParseDisplayAmount(raw)
	}
	if raw, err := terminal.ReadText(sess, idClearingAmount); err == nil {
		totals.TotalAmount, _ = ParseDisplayAmount(raw)
	}

	if err := terminal.Press(sess, terminal.IDSummaryButton); err != nil {
		return totals, fmt.Errorf("read clearing totals: %w", err)
	}
	return totals, nil
}

// ensureScreenWithUser checks for the given screen and, when it is not
// showing, asks the operator to navigate there manually. Declining
// aborts: the terminal returns home and ErrCancelled is reported.
func (b *Builder) ensureScreenWithUser(title string, attempts int) error {
	for i := 0; i < attempts; i++ {
		on, err := b.probe.OnScreen(title)
		if err != nil {
			return err
		}
		if on {
			return nil
		}

		ok, err := b.ask.Confirm(fmt.Sprintf("The terminal is not on %q. Navigate there manually, then continue?", title))
		if err != nil {
			return err
		}
		if !ok {
			if err := b.nav.ReturnHome(); err != nil {
				return err
			}
			return prompt.ErrCancelled
		}
	}

	on, err := b.probe.OnScreen(title)
	if err != nil {
		return err
	}
	if on {
		return nil
	}
	return fmt.Errorf("%w: %s", terminal.ErrScreenNotReached, title)
}
