package wire

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/is00hcw/wire/internal/schema"
)

// gendocs regenerates the field kinds section in README.md between the
// markers <!-- BEGIN:FIELD_KINDS --> and <!-- END:FIELD_KINDS -->.
func init() {
	cmd := &cobra.Command{
		Use:   "gendocs",
		Short: "Regenerate README field kinds",
		RunE: func(_ *cobra.Command, _ []string) error {
			path := "README.md"
			b, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			start := []byte("<!-- BEGIN:FIELD_KINDS -->")
			end := []byte("<!-- END:FIELD_KINDS -->")
			i := bytes.Index(b, start)
			j := bytes.Index(b, end)
			if i < 0 || j < 0 || j <= i {
				return fmt.Errorf("markers not found in README.md")
			}

			jsonRep := map[schema.Kind]string{
				schema.KindBool:   "true / false",
				schema.KindInt32:  "number (32-bit signed)",
				schema.KindInt64:  "number (64-bit signed)",
				schema.KindUint32: "number (32-bit unsigned)",
				schema.KindUint64: "number (64-bit unsigned)",
				schema.KindDouble: "number",
				schema.KindString: "string",
				schema.KindBytes:  "string (base64)",
			}
			var out strings.Builder
			out.WriteString("\n| Kind | JSON representation |\n|---|---|\n")
			for k := schema.KindBool; k <= schema.KindBytes; k++ {
				out.WriteString("| `" + k.String() + "` | " + jsonRep[k] + " |\n")
			}
			out.WriteString("| `<Package.Message>` | object, redacted recursively |\n")

			var nb bytes.Buffer
			nb.Write(b[:i])
			nb.Write(start)
			nb.WriteString("\n")
			nb.WriteString(out.String())
			nb.Write(end)
			nb.Write(b[j+len(end):])
			return os.WriteFile(path, nb.Bytes(), 0644)
		},
	}
	rootCmd.AddCommand(cmd)
}
