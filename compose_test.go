package artistloader

import "testing"

func TestComposePrompt(t *testing.T) {
	catalog := NewStaticCatalog(testEntries)
	tests := []struct {
		name   string
		base   string
		values []ArtistValue
		want   string
	}{
		{"no artists", "  a castle  ", nil, "a castle"},
		{
			"enabled keywords",
			"a castle",
			[]ArtistValue{{On: true, Artist: "Hayao Miyazaki", Strength: 1}},
			"a castle, studio ghibli",
		},
		{
			"weighted",
			"a castle",
			[]ArtistValue{
				{On: true, Artist: "Hayao Miyazaki", Strength: 1.5},
				{On: true, Artist: "Greg Rutkowski", Strength: 2},
			},
			"a castle, (studio ghibli:1.5), (greg rutkowski, artstation:2)",
		},
		{
			"disabled and none skipped",
			"a castle",
			[]ArtistValue{
				{On: false, Artist: "Hayao Miyazaki", Strength: 1},
				{On: true, Artist: NoneArtist, Strength: 1},
				{On: true, Artist: "", Strength: 1},
			},
			"a castle",
		},
		{
			"unknown artist uses its name",
			"",
			[]ArtistValue{{On: true, Artist: "Moebius", Strength: 0.5}},
			"(Moebius:0.5)",
		},
		{
			"order kept",
			"x",
			[]ArtistValue{
				{On: true, Artist: "Greg Rutkowski", Strength: 1},
				{On: true, Artist: "Hayao Miyazaki", Strength: 1},
			},
			"x, greg rutkowski, artstation, studio ghibli",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComposePrompt(tt.base, tt.values, catalog); got != tt.want {
				t.Errorf("ComposePrompt = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestComposePrompt_NilCatalog(t *testing.T) {
	got := ComposePrompt("base", []ArtistValue{{On: true, Artist: "Hayao Miyazaki", Strength: 1}}, nil)
	if got != "base, Hayao Miyazaki" {
		t.Errorf("ComposePrompt = %q", got)
	}
}

func TestFormatWeight(t *testing.T) {
	tests := map[float64]string{1: "1", 2: "2", 0: "0", 1.5: "1.5", 0.5: "0.5", 0.3: "0.3"}
	for in, want := range tests {
		if got := formatWeight(in); got != want {
			t.Errorf("formatWeight(%v) = %q, want %q", in, got, want)
		}
	}
}
