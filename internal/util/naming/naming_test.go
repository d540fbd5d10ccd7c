package naming

import "testing"

func TestDatabaseServer(t *testing.T) {
	tests := []struct {
		name     string
		cluster  string
		expected string
	}{
		{"simple", "strand", "strand-mysql"},
		{"mixed case", "Strand-Prod", "strand-prod-mysql"},
		{"underscores collapse", "my_cool_cluster", "my-cool-cluster-mysql"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DatabaseServer(tt.cluster); got != tt.expected {
				t.Errorf("DatabaseServer(%q) = %q, want %q", tt.cluster, got, tt.expected)
			}
		})
	}
}

func TestStorageAccount(t *testing.T) {
	tests := []struct {
		name     string
		cluster  string
		expected string
	}{
		{"simple", "strand", "strandstorage"},
		{"hyphens dropped", "strand-prod", "strandprodstorage"},
		{"uppercase squeezed", "Strand.Prod", "strandprodstorage"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StorageAccount(tt.cluster)
			if got != tt.expected {
				t.Errorf("StorageAccount(%q) = %q, want %q", tt.cluster, got, tt.expected)
			}
		})
	}

	t.Run("long names stay within the 24 char cap", func(t *testing.T) {
		got := StorageAccount("an-extremely-long-cluster-name-indeed")
		if len(got) > 24 {
			t.Errorf("StorageAccount produced %d chars, cap is 24: %q", len(got), got)
		}
	})
}

func TestAgentPool(t *testing.T) {
	tests := []struct {
		name     string
		pool     string
		expected string
	}{
		{"simple", "workspaces", "workspaces"},
		{"hyphen dropped", "work-spaces", "workspaces"},
		{"truncated to 12", "verylongworkerpoolname", "verylongwork"},
		{"leading digits stripped", "0workers", "workers"},
		{"all invalid falls back", "___", "pool"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AgentPool(tt.pool); got != tt.expected {
				t.Errorf("AgentPool(%q) = %q, want %q", tt.pool, got, tt.expected)
			}
		})
	}
}

func TestNodeResourceGroup(t *testing.T) {
	got := NodeResourceGroup("strand-rg", "strand", "westeurope")
	if got != "MC_strand-rg_strand_westeurope" {
		t.Errorf("NodeResourceGroup = %q", got)
	}
}
