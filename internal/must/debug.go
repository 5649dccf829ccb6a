package must

import (
	"fmt"
	"log/slog"

	"github.com/goccy/go-json"
)

func PrintDebugJSON(a any) {
	jsn, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		slog.Error("failed to print debug json", "err", err)
		return
	}

	fmt.Println(string(jsn))
}
