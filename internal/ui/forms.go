package ui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/hawklabs/hawk/internal/client"
)

// formKind identifies the modal form currently open, if any.
type formKind int

const (
	formNone formKind = iota
	formAddClient
	formEditClient
	formDeleteClient
	formLinkProject
	formPickTool
)

// noClientOption labels the link-picker choice that leaves the project
// unlinked.
const noClientOption = "(No client)"

// clientDraft binds the client form fields. Amount and date stay strings
// until validated so partial input never breaks the form.
type clientDraft struct {
	ID          string
	Name        string
	Company     string
	Email       string
	Phone       string
	Address     string
	Notes       string
	Cycle       string
	Amount      string
	Currency    string
	NextPayment string
}

// draftFrom seeds a draft from an existing record for editing.
func draftFrom(c client.Client) clientDraft {
	d := clientDraft{
		ID:          c.ID,
		Name:        c.Name,
		Company:     c.Company,
		Email:       c.Email,
		Phone:       c.Phone,
		Address:     c.Address,
		Notes:       c.Notes,
		Cycle:       c.BillingCycle,
		Currency:    c.Currency,
		NextPayment: c.NextPayment,
	}
	if c.Amount > 0 {
		d.Amount = strconv.Itoa(c.Amount)
	}
	return d
}

// toClient converts a validated draft into a store record. Projects are
// not part of the form; the caller preserves them on edit.
func (d clientDraft) toClient() client.Client {
	amount, _ := strconv.Atoi(strings.TrimSpace(d.Amount))
	return client.Client{
		ID:           strings.TrimSpace(d.ID),
		Name:         strings.TrimSpace(d.Name),
		Company:      strings.TrimSpace(d.Company),
		Email:        strings.TrimSpace(d.Email),
		Phone:        strings.TrimSpace(d.Phone),
		Address:      strings.TrimSpace(d.Address),
		Notes:        strings.TrimSpace(d.Notes),
		BillingCycle: d.Cycle,
		Amount:       amount,
		Currency:     strings.TrimSpace(d.Currency),
		NextPayment:  strings.TrimSpace(d.NextPayment),
	}
}

// --- Field validators ---

func validateRequired(value string) error {
	if strings.TrimSpace(value) == "" {
		return errors.New("required")
	}
	return nil
}

func validateAmount(value string) error {
	v := strings.TrimSpace(value)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return errors.New("whole non-negative number")
	}
	return nil
}

func validateDate(value string) error {
	v := strings.TrimSpace(value)
	if v == "" {
		return nil
	}
	if _, err := time.Parse(client.DateLayout, v); err != nil {
		return errors.New("use YYYY-MM-DD")
	}
	return nil
}

// --- Form constructors ---

// newClientForm builds the add/edit form over the draft. In edit mode the
// ID is fixed: it is the store key, so the field is not offered.
func newClientForm(d *clientDraft, editing bool) *huh.Form {
	title := "New client"
	if editing {
		title = "Edit client: " + d.ID
	}

	identity := []huh.Field{
		huh.NewNote().Title(title),
	}
	if !editing {
		identity = append(identity,
			huh.NewInput().Title("ID (slug)").Placeholder("acme").
				Value(&d.ID).Validate(validateRequired))
	}
	identity = append(identity,
		huh.NewInput().Title("Name").Value(&d.Name).Validate(validateRequired),
		huh.NewInput().Title("Company").Value(&d.Company),
		huh.NewInput().Title("Email").Value(&d.Email),
		huh.NewInput().Title("Phone").Value(&d.Phone),
		huh.NewInput().Title("Address").Value(&d.Address),
	)

	billing := []huh.Field{
		huh.NewSelect[string]().Title("Billing cycle").
			Options(
				huh.NewOption("Annual", client.CycleAnnual),
				huh.NewOption("Monthly", client.CycleMonthly),
				huh.NewOption("One-time", client.CycleOneTime),
			).
			Value(&d.Cycle),
		huh.NewInput().Title("Amount").Placeholder("0").
			Value(&d.Amount).Validate(validateAmount),
		huh.NewInput().Title("Currency").Placeholder(client.DefaultCurrency).
			Value(&d.Currency),
		huh.NewInput().Title("Next payment").Placeholder("YYYY-MM-DD").
			Value(&d.NextPayment).Validate(validateDate),
		huh.NewText().Title("Notes").Lines(3).Value(&d.Notes),
	}

	return huh.NewForm(
		huh.NewGroup(identity...),
		huh.NewGroup(billing...),
	).WithTheme(hawkFormTheme()).WithShowHelp(true)
}

// newDeleteForm builds the delete confirmation for a client.
func newDeleteForm(name string, confirmed *bool) *huh.Form {
	return huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(fmt.Sprintf("Delete client %q?", name)).
			Description("Only the client record is removed; project notes stay.").
			Affirmative("Delete").
			Negative("Cancel").
			Value(confirmed),
	)).WithTheme(hawkFormTheme())
}

// newLinkForm builds the picker that links a project to one client, or to
// none.
func newLinkForm(projectName string, clients []client.Client, selected *string) *huh.Form {
	opts := make([]huh.Option[string], 0, len(clients)+1)
	opts = append(opts, huh.NewOption(noClientOption, ""))
	for _, c := range clients {
		label := c.Name
		if c.Company != "" {
			label += " (" + c.Company + ")"
		}
		opts = append(opts, huh.NewOption(label, c.ID))
	}

	return huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Link " + projectName + " to").
			Options(opts...).
			Value(selected),
	)).WithTheme(hawkFormTheme())
}

// newToolForm builds the AI-tool picker for session launches.
func newToolForm(tools []string, selected *string) *huh.Form {
	opts := make([]huh.Option[string], len(tools))
	for i, tool := range tools {
		opts[i] = huh.NewOption(tool, tool)
	}

	return huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("AI tool").
			Options(opts...).
			Value(selected),
	)).WithTheme(hawkFormTheme())
}

// hawkFormTheme maps the dashboard palette onto a huh theme.
func hawkFormTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Base = t.Focused.Base.BorderForeground(colorBorder)
	t.Focused.Card = t.Focused.Base
	t.Focused.Title = t.Focused.Title.Foreground(colorGreen).Bold(true)
	t.Focused.NoteTitle = t.Focused.NoteTitle.Foreground(colorGreen).Bold(true).MarginBottom(1)
	t.Focused.Description = t.Focused.Description.Foreground(colorMuted)
	t.Focused.ErrorIndicator = t.Focused.ErrorIndicator.Foreground(colorRed)
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(colorRed)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(colorGreen).SetString("▸ ")
	t.Focused.NextIndicator = t.Focused.NextIndicator.Foreground(colorGreen)
	t.Focused.PrevIndicator = t.Focused.PrevIndicator.Foreground(colorGreen)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(colorYellow)
	t.Focused.SelectedPrefix = lipgloss.NewStyle().Foreground(colorYellow).SetString("◆ ")
	t.Focused.UnselectedPrefix = lipgloss.NewStyle().Foreground(colorMuted).SetString("◇ ")
	t.Focused.TextInput.Cursor = t.Focused.TextInput.Cursor.Foreground(colorGreen)
	t.Focused.TextInput.Placeholder = t.Focused.TextInput.Placeholder.Foreground(colorMuted)
	t.Focused.TextInput.Prompt = t.Focused.TextInput.Prompt.Foreground(colorBlue)
	t.Focused.FocusedButton = t.Focused.FocusedButton.
		Foreground(lipgloss.Color("#1D2021")).
		Background(colorGreen)
	t.Focused.BlurredButton = t.Focused.BlurredButton.Foreground(colorMuted)

	t.Blurred = t.Focused
	t.Blurred.Base = t.Focused.Base.BorderStyle(lipgloss.HiddenBorder())
	t.Blurred.Card = t.Blurred.Base
	t.Blurred.NextIndicator = lipgloss.NewStyle()
	t.Blurred.PrevIndicator = lipgloss.NewStyle()

	t.Group.Title = t.Focused.Title
	t.Group.Description = t.Focused.Description

	return t
}
