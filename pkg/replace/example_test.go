package replace_test

import (
	"fmt"
	"os"

	"github.com/walteh/recase/pkg/replace"
)

func ExampleReplacer_ReplaceString() {
	r := replace.New()

	// One rule covers every casing of the identifier.
	if err := r.AddReplacement("old name", "new name", replace.PreserveCase, false); err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println(r.ReplaceString("oldName, OldName, old_name and OLD-NAME"))
	// Output:
	// newName, NewName, new_name and NEW-NAME
}

func ExampleReplacer_FindAndReplace() {
	r := replace.New()

	if err := r.AddReplacement("foo_bar", "baz", replace.IgnoreCase, false); err != nil {
		fmt.Println("error:", err)
		return
	}

	// Any io.Writer works as the sink.
	n, err := r.FindAndReplace([]byte("FOO_BAR and foo_bar\n"), os.Stdout)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println("replacements:", n)
	// Output:
	// baz and baz
	// replacements: 2
}
