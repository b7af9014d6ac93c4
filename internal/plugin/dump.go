package plugin

import (
	"fmt"
	"os"
	"path/filepath"

	"google.golang.org/protobuf/types/pluginpb"
)

// DumpFiles writes every File entry of resp to dir, creating parent
// directories as needed. It exists for local debugging of generated
// output outside the protoc plugin pipeline, where the response would
// otherwise only ever be inspected as opaque bytes on stdout.
func DumpFiles(resp *pluginpb.CodeGeneratorResponse, dir string) error {
	for _, f := range resp.GetFile() {
		path := filepath.Join(dir, f.GetName())
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("plugin: create dir %s: %w", filepath.Dir(path), err)
		}
		if err := os.WriteFile(path, []byte(f.GetContent()), 0o644); err != nil {
			return fmt.Errorf("plugin: write file %s: %w", path, err)
		}
	}
	return nil
}
