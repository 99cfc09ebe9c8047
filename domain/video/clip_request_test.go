package video

import (
	"strings"
	"testing"
)

func TestNewClipRequest(t *testing.T) {
	tests := []struct {
		name       string
		sourcePath string
		start      Timestamp
		end        Timestamp
		wantErr    bool
		errMsg     string
	}{
		{
			name:       "valid request",
			sourcePath: "/tmp/video.mp4",
			start:      Timestamp{Minutes: 1},
			end:        Timestamp{Minutes: 2},
		},
		{
			name:    "missing source",
			start:   Timestamp{Minutes: 1},
			end:     Timestamp{Minutes: 2},
			wantErr: true,
			errMsg:  "source path is required",
		},
		{
			name:       "end before start",
			sourcePath: "/tmp/video.mp4",
			start:      Timestamp{Minutes: 2},
			end:        Timestamp{Minutes: 1},
			wantErr:    true,
			errMsg:     "must be after start",
		},
		{
			name:       "end equal to start",
			sourcePath: "/tmp/video.mp4",
			start:      Timestamp{Minutes: 2},
			end:        Timestamp{Minutes: 2},
			wantErr:    true,
			errMsg:     "must be after start",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := NewClipRequest(tt.sourcePath, tt.start, tt.end)

			if tt.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
					return
				}
				if !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("error = %v, want error containing %q", err, tt.errMsg)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if req.DurationSeconds() != tt.end.TotalSeconds()-tt.start.TotalSeconds() {
				t.Errorf("DurationSeconds() = %d, want %d", req.DurationSeconds(), tt.end.TotalSeconds()-tt.start.TotalSeconds())
			}
		})
	}
}
