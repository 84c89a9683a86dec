package github

import "testing"

func TestParseRepo(t *testing.T) {
	tests := []struct {
		name      string
		ref       string
		wantOwner string
		wantName  string
		wantErr   bool
	}{
		{
			name:      "owner/repo format",
			ref:       "acme/widgets",
			wantOwner: "acme",
			wantName:  "widgets",
		},
		{
			name:      "github.com prefix",
			ref:       "github.com/acme/widgets",
			wantOwner: "acme",
			wantName:  "widgets",
		},
		{
			name:      "https URL",
			ref:       "https://github.com/acme/widgets",
			wantOwner: "acme",
			wantName:  "widgets",
		},
		{
			name:      "trailing .git suffix",
			ref:       "https://github.com/acme/widgets.git",
			wantOwner: "acme",
			wantName:  "widgets",
		},
		{
			name:      "surrounding whitespace",
			ref:       "  acme/widgets  ",
			wantOwner: "acme",
			wantName:  "widgets",
		},
		{
			name:    "missing repo name",
			ref:     "acme",
			wantErr: true,
		},
		{
			name:    "too many segments",
			ref:     "acme/widgets/extra",
			wantErr: true,
		},
		{
			name:    "empty string",
			ref:     "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, err := ParseRepo(tt.ref)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseRepo() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr {
				return
			}
			if repo.Owner != tt.wantOwner {
				t.Errorf("ParseRepo() owner = %v, want %v", repo.Owner, tt.wantOwner)
			}
			if repo.Name != tt.wantName {
				t.Errorf("ParseRepo() name = %v, want %v", repo.Name, tt.wantName)
			}
		})
	}
}

func TestRepoString(t *testing.T) {
	repo := Repo{Owner: "acme", Name: "widgets"}
	if got := repo.String(); got != "acme/widgets" {
		t.Errorf("Repo.String() = %v, want acme/widgets", got)
	}
}
