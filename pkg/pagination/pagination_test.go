package pagination

import "testing"

func TestNormalizeLimit(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   int
		want int
	}{
		{name: "zero falls back to default", in: 0, want: DefaultLimit},
		{name: "negative falls back to default", in: -5, want: DefaultLimit},
		{name: "within range is kept", in: 48, want: 48},
		{name: "above max is capped", in: 500, want: MaxLimit},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := NormalizeLimit(tc.in); got != tc.want {
				t.Fatalf("NormalizeLimit(%d) = %d, want %d", tc.in, got, tc.want)
			}
		})
	}
}

func TestParamsOffset(t *testing.T) {
	t.Parallel()

	if got := (Params{Page: 1, Limit: 24}).Offset(); got != 0 {
		t.Fatalf("first page offset = %d, want 0", got)
	}
	if got := (Params{Page: 3, Limit: 10}).Offset(); got != 20 {
		t.Fatalf("third page offset = %d, want 20", got)
	}
	if got := (Params{}).Offset(); got != 0 {
		t.Fatalf("zero params offset = %d, want 0", got)
	}
}

func TestNewPage(t *testing.T) {
	t.Parallel()

	page := NewPage([]string{"a", "b"}, 50, Params{Page: 1, Limit: 2})
	if !page.HasNext {
		t.Fatal("expected has_next for partial window")
	}
	if page.Total != 50 || page.Page != 1 || page.Limit != 2 {
		t.Fatalf("unexpected page metadata: %+v", page)
	}

	last := NewPage([]string{"z"}, 3, Params{Page: 2, Limit: 2})
	if last.HasNext {
		t.Fatal("did not expect has_next on the final page")
	}

	empty := NewPage[string](nil, 0, Params{})
	if empty.Items == nil {
		t.Fatal("items should marshal as an empty array, not null")
	}
}
