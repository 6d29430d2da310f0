package main

import (
	"errors"
	"testing"
)

func TestEditorRequest_UseEditor(t *testing.T) {
	tests := []struct {
		name    string
		req     editorRequest
		want    bool
		wantErr error
	}{
		{name: "edit flag wins over fields", req: editorRequest{hasFields: true, edit: true}, want: true},
		{name: "no-edit skips", req: editorRequest{noEdit: true, interactive: true}, want: false},
		{name: "fields skip", req: editorRequest{hasFields: true, interactive: true}, want: false},
		{name: "stdin description skips", req: editorRequest{descriptionStdin: true, interactive: true}, want: false},
		{name: "interactive default", req: editorRequest{interactive: true}, want: true},
		{name: "non-interactive default", req: editorRequest{}, want: false},
		{name: "edit and no-edit conflict", req: editorRequest{edit: true, noEdit: true}, wantErr: errEditConflict},
		{name: "edit with stdin description", req: editorRequest{edit: true, descriptionStdin: true}, wantErr: errEditStdin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.req.useEditor()
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
			if got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}
