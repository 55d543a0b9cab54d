package tui

import (
	"fmt"

	"solex/pkg/models"
	"solex/pkg/utils"
)

// chromeLines is how many terminal rows the non-content parts of a
// detail screen occupy: header, tab bar, box borders and footer.
const chromeLines = 9

func (m model) viewportHeight() int {
	h := m.height - chromeLines
	if h < 1 {
		h = 1
	}
	return h
}

// tabLines builds the full, unwindowed content of one tab. The view
// windows it with the remembered scroll offset; scroll math uses its
// length.
func (m model) tabLines(tab int) []string {
	switch m.screen {
	case screenTransaction:
		if m.tx != nil {
			return txTabLines(m.tx, tab)
		}
	case screenAccount:
		if m.account != nil {
			return accountTabLines(m.account, tab)
		}
	}
	return nil
}

func (m *model) maxScroll(tab int) int {
	max := len(m.tabLines(tab)) - m.viewportHeight()
	if max < 0 {
		max = 0
	}
	return max
}

// scrollBy moves the active tab's offset, clamped to the scrollable
// range of that tab's content.
func (m *model) scrollBy(delta int) {
	if len(m.tabs.scroll) == 0 {
		return
	}
	offset := m.tabs.scroll[m.tabs.active] + delta
	if max := m.maxScroll(m.tabs.active); offset > max {
		offset = max
	}
	if offset < 0 {
		offset = 0
	}
	m.tabs.scroll[m.tabs.active] = offset
}

// clampScroll re-bounds every remembered offset, for when the viewport
// shrinks under a stored position.
func (m *model) clampScroll() {
	if m.screen != screenTransaction && m.screen != screenAccount {
		return
	}
	for tab := range m.tabs.scroll {
		if max := m.maxScroll(tab); m.tabs.scroll[tab] > max {
			m.tabs.scroll[tab] = max
		}
	}
}

func txTabLines(tx *models.TransactionView, tab int) []string {
	switch tab {
	case 0: // Overview
		status := infoStyle.Render("Success")
		if tx.Status.Failed {
			status = errStyle.Render("Failed: " + tx.Status.Err)
		}
		blockTime := "unknown"
		if tx.BlockTime != nil {
			blockTime = tx.BlockTime.UTC().Format("2006-01-02 15:04:05 UTC")
		}
		return []string{
			"Signature:     " + tx.Signature.String(),
			"Status:        " + status,
			"Slot:          " + utils.AddCommas(fmt.Sprintf("%d", tx.Slot)),
			"Block Time:    " + blockTime,
			"Fee:           " + utils.FormatLamports(tx.Fee) + " SOL",
			"Priority Fee:  " + utils.FormatLamports(tx.PriorityFee) + " SOL",
			"Compute Units: " + utils.AddCommas(fmt.Sprintf("%d", tx.ComputeUnits)),
			"",
			fmt.Sprintf("%d instruction(s), %d account(s), %d token transfer(s), %d log line(s)",
				len(tx.Instructions), len(tx.Accounts), len(tx.TokenTransfers), len(tx.Logs)),
		}
	case 1: // Accounts
		lines := []string{tableHeaderStyle.Render(fmt.Sprintf("%-4s %-46s %5s %3s %16s", "#", "Address", "Signs", "W", "Delta (SOL)"))}
		for i, acc := range tx.Accounts {
			signer := " "
			if acc.IsSigner {
				signer = "S"
			}
			writable := " "
			if acc.IsWritable {
				writable = "W"
			}
			delta := utils.FormatSignedLamports(acc.Delta)
			lines = append(lines, fmt.Sprintf("%-4d %-46s %5s %3s %16s",
				i, utils.TruncateString(acc.Address.String(), 46), signer, writable, delta))
		}
		return lines
	case 2: // Instructions
		if len(tx.Instructions) == 0 {
			return []string{subtleStyle.Render("No instructions.")}
		}
		lines := make([]string, 0, len(tx.Instructions))
		for i, ix := range tx.Instructions {
			lines = append(lines, fmt.Sprintf("%2d. %s · %s (%d bytes)",
				i+1, infoStyle.Render(ix.ProgramLabel), ix.Kind, ix.DataLen))
		}
		return lines
	case 3: // Token Transfers
		if len(tx.TokenTransfers) == 0 {
			return []string{subtleStyle.Render("No token transfers found.")}
		}
		var lines []string
		for i, tr := range tx.TokenTransfers {
			amount := utils.FormatTokenAmount(tr.Amount, tr.Decimals, tr.DecimalsKnown)
			lines = append(lines, fmt.Sprintf("%2d. %s", i+1, infoStyle.Render(amount)))
			if tr.DecimalsKnown {
				lines = append(lines, "    mint: "+tr.Mint.String())
			}
			lines = append(lines,
				"    from: "+tr.Source.String(),
				"    to:   "+tr.Destination.String(),
			)
		}
		return lines
	case 4: // Logs
		return tx.Logs
	}
	return nil
}

func accountTabLines(acc *models.AccountView, tab int) []string {
	switch tab {
	case 0: // Overview
		executable := "no"
		if acc.Executable {
			executable = "yes"
		}
		return []string{
			"Address:    " + acc.Address.String(),
			"Balance:    " + infoStyle.Render(utils.FormatLamports(acc.Lamports)+" SOL"),
			"Type:       " + acc.Kind.String(),
			"Owner:      " + fmt.Sprintf("%s (%s)", acc.Owner.String(), acc.OwnerLabel),
			"Executable: " + executable,
			"Data Size:  " + utils.AddCommas(fmt.Sprintf("%d", acc.DataSize)) + " bytes",
			"Rent Epoch: " + acc.RentEpoch,
		}
	case 1: // Token Holdings
		if len(acc.Holdings) == 0 {
			return []string{subtleStyle.Render("No token holdings.")}
		}
		lines := []string{tableHeaderStyle.Render(fmt.Sprintf("%-46s %18s", "Mint", "Amount"))}
		for _, h := range acc.Holdings {
			lines = append(lines, fmt.Sprintf("%-46s %18s",
				utils.TruncateString(h.Mint.String(), 46),
				utils.FormatTokenAmount(h.Amount, h.Decimals, true)))
		}
		return lines
	case 2: // Recent Activity
		if len(acc.RecentActivity) == 0 {
			return []string{subtleStyle.Render("No recent activity.")}
		}
		lines := []string{tableHeaderStyle.Render(fmt.Sprintf("%-24s %12s %-20s %s", "Signature", "Slot", "Time", "Status"))}
		for _, sig := range acc.RecentActivity {
			when := "unknown"
			if sig.Time != nil {
				when = sig.Time.UTC().Format("2006-01-02 15:04:05")
			}
			status := infoStyle.Render("ok")
			if sig.Failed {
				status = errStyle.Render("failed")
			}
			lines = append(lines, fmt.Sprintf("%-24s %12s %-20s %s",
				utils.TruncateString(sig.Signature.String(), 24),
				utils.AddCommas(fmt.Sprintf("%d", sig.Slot)),
				when, status))
		}
		return lines
	}
	return nil
}
