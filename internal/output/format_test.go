package output_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/Natatashkin/todo/internal/output"
	"github.com/Natatashkin/todo/internal/service"
	"github.com/Natatashkin/todo/internal/testutil"
)

func sampleItems() []output.Item {
	return []output.Item{
		{Num: 1, Task: service.Task{ID: "3", Title: "New task", OwnerID: "1"}},
		{Num: 2, Task: service.Task{ID: "1", Title: "Buy milk", OwnerID: "1"}},
		{Num: 3, Task: service.Task{ID: "2", Title: "Pay bills", Completed: true, OwnerID: "1"}},
		{Num: 12, Task: service.Task{ID: "7", Title: "  ", Completed: true}},
	}
}

func TestFormatTask(t *testing.T) {
	tests := []struct {
		name string
		num  int
		task service.Task
		want string
	}{
		{"open", 1, service.Task{Title: "Buy milk"}, "   1  [ ] Buy milk\n"},
		{"completed", 2, service.Task{Title: "Pay bills", Completed: true}, "   2  [x] Pay bills\n"},
		{"empty title", 3, service.Task{Title: ""}, "   3  [ ] (untitled)\n"},
		{"whitespace title", 4, service.Task{Title: " \t "}, "   4  [ ] (untitled)\n"},
		{"newlines", 5, service.Task{Title: "line1\nline2\r\nline3"}, "   5  [ ] line1 line2  line3\n"},
		{"wide number", 1234, service.Task{Title: "x"}, "1234  [ ] x\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			output.FormatTask(&buf, tt.num, tt.task)
			if buf.String() != tt.want {
				t.Errorf("expected %q, got %q", tt.want, buf.String())
			}
		})
	}
}

func TestFormatSummary(t *testing.T) {
	var buf bytes.Buffer
	output.FormatSummary(&buf, 2, 1)
	if buf.String() != "2 open, 1 completed\n" {
		t.Errorf("unexpected summary %q", buf.String())
	}
}

func TestRender_Text(t *testing.T) {
	var buf bytes.Buffer
	if err := output.Render(&buf, output.FormatText, sampleItems()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.GoldenString(t, "list_text", buf.String())
}

func TestRender_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := output.Render(&buf, output.FormatJSON, sampleItems()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v\n%s", err, buf.String())
	}
	if len(got) != 4 {
		t.Fatalf("expected 4 items, got %d", len(got))
	}
	first := got[0]
	if first["num"] != float64(1) || first["id"] != "3" || first["title"] != "New task" || first["ownerId"] != "1" {
		t.Errorf("unexpected first item: %v", first)
	}
	if got[2]["completed"] != true {
		t.Errorf("expected third item completed: %v", got[2])
	}
}

func TestRender_YAML(t *testing.T) {
	var buf bytes.Buffer
	if err := output.Render(&buf, output.FormatYAML, sampleItems()[:1]); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got []map[string]any
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid yaml: %v\n%s", err, buf.String())
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 item, got %d", len(got))
	}
	if got[0]["num"] != 1 || got[0]["id"] != "3" || got[0]["owner_id"] != "1" || got[0]["completed"] != false {
		t.Errorf("unexpected item: %v", got[0])
	}
}

func TestRender_EmptyMachineFormats(t *testing.T) {
	var buf bytes.Buffer
	if err := output.Render(&buf, output.FormatJSON, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.String() != "[]\n" {
		t.Errorf("expected empty json list, got %q", buf.String())
	}

	buf.Reset()
	if err := output.Render(&buf, output.FormatText, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected no text output, got %q", buf.String())
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    output.Format
		wantErr bool
	}{
		{"", output.FormatText, false},
		{"text", output.FormatText, false},
		{"JSON", output.FormatJSON, false},
		{" yaml ", output.FormatYAML, false},
		{"xml", "", true},
	}

	for _, tt := range tests {
		got, err := output.ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
