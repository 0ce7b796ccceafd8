package constants_test

import (
	"fmt"
	"strings"

	"github.com/agentstation/funcsync/pkg/constants"
)

// Example demonstrates expanding the default stream file patterns
func Example() {
	primary := strings.NewReplacer(
		constants.FlavourPlaceholder, "a",
		constants.LevelPlaceholder, "O2",
	).Replace(constants.DefaultPrimaryPattern)

	fmt.Println(primary)
	fmt.Println(primary + constants.DefaultCleanedSuffix)
	// Output:
	// function_logs_a_O2.jsonl
	// function_logs_a_O2.jsonl.cleaned
}

// Example_defaults demonstrates the size of the default stream family
func Example_defaults() {
	fmt.Printf("%d flavours x %d levels = %d streams\n",
		len(constants.DefaultFlavours), len(constants.DefaultLevels),
		len(constants.DefaultFlavours)*len(constants.DefaultLevels))
	// Output:
	// 2 flavours x 4 levels = 8 streams
}
