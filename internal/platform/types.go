package platform

import (
	"fmt"
	"strconv"
	"strings"
)

// VKey is a host virtual key number as accepted by sendVKey.
type VKey int

const (
	VKeyEnter   VKey = 0
	VKeyBack    VKey = 3
	VKeyExecute VKey = 8
	VKeySave    VKey = 11
	VKeyCancel  VKey = 12
	VKeyExit    VKey = 15
)

var vkeyNames = map[string]VKey{
	"enter":   VKeyEnter,
	"back":    VKeyBack,
	"f3":      VKeyBack,
	"execute": VKeyExecute,
	"f8":      VKeyExecute,
	"save":    VKeySave,
	"cancel":  VKeyCancel,
	"f12":     VKeyCancel,
	"exit":    VKeyExit,
}

// ParseVKey converts a flag value (a key name or a number 0-99) to a VKey.
func ParseVKey(s string) (VKey, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if k, ok := vkeyNames[s]; ok {
		return k, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > 99 {
		return 0, fmt.Errorf("unknown virtual key: %q (expected a number 0-99 or enter, back, execute, save, cancel, exit)", s)
	}
	return VKey(n), nil
}

// Well-known widget ids of the logon and main screens.
const (
	LogonUserField     = "wnd[0]/usr/txtRSYST-BNAME"
	LogonPasswordField = "wnd[0]/usr/pwdRSYST-BCODE"
	LogonLanguageField = "wnd[0]/usr/txtRSYST-LANGU"
	BackButton         = "wnd[0]/tbar[0]/btn[3]"
	ExitConfirmButton  = "wnd[1]/usr/btnBUTTON_YES"
)
