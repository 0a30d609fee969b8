package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/amber/pkg/durable"
)

// statsOutput is the JSON shape of the stats command.
type statsOutput struct {
	Types     int `json:"types"`
	Lifetimes int `json:"lifetimes"`
	Goals     int `json:"goals"`
	Substs    int `json:"substs"`
	GoalLists int `json:"goal_lists"`
	Total     int `json:"total"`
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print entity counts for a store",
		RunE:  runStats,
	}
}

func runStats(cmd *cobra.Command, args []string) error {
	storeDir, err := resolveStoreDir()
	if err != nil {
		return exitError(cmd, exitUserError, fmt.Sprintf("resolve store directory: %s", err))
	}

	s, err := durable.Open(storeDir)
	if err != nil {
		return exitError(cmd, exitSysError, fmt.Sprintf("open store: %s", err))
	}
	defer s.Close()

	st, err := s.Stats()
	if err != nil {
		return exitError(cmd, exitSysError, fmt.Sprintf("read stats: %s", err))
	}

	if flags.jsonMode {
		out := statsOutput{
			Types:     st.Types,
			Lifetimes: st.Lifetimes,
			Goals:     st.Goals,
			Substs:    st.Substs,
			GoalLists: st.GoalLists,
			Total:     st.Total,
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return exitError(cmd, exitSysError, fmt.Sprintf("encode stats: %s", err))
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "store:      %s\n", storeDir)
	fmt.Fprintf(w, "types:      %d\n", st.Types)
	fmt.Fprintf(w, "lifetimes:  %d\n", st.Lifetimes)
	fmt.Fprintf(w, "goals:      %d\n", st.Goals)
	fmt.Fprintf(w, "substs:     %d\n", st.Substs)
	fmt.Fprintf(w, "goal lists: %d\n", st.GoalLists)
	fmt.Fprintf(w, "total:      %d\n", st.Total)
	return nil
}
