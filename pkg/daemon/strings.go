package daemon

import "fmt"

func formatAlertBody(pct int, advice string) string {
	return fmt.Sprintf("Battery at %d%%. %s", pct, advice)
}

func formatHealthBody(pct int) string {
	return fmt.Sprintf("Battery health is down to %d%% of its design capacity. Consider servicing the battery.", pct)
}
