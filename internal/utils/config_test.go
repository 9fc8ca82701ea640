package utils_test

import (
	"testing"
	"time"

	"github.com/formulactl/formulactl/internal/utils"
	"github.com/spf13/viper"
)

func TestRequireConfigString(t *testing.T) {
	type args struct {
		key string
	}

	tests := []struct {
		name       string
		args       args
		wantValue  string
		wantErr    bool
		wantErrStr string
	}{
		{
			name: "ok",
			args: args{
				key: "myKey",
			},
			wantValue: "all good",
		},
		{
			name: "missing",
			args: args{
				key: "missing",
			},
			wantValue:  "",
			wantErr:    true,
			wantErrStr: "config key 'missing' could not be found",
		},
	}

	viper.Set("myKey", "all good")

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotValue, err := utils.RequireConfigString(tt.args.key)
			if (err != nil) != tt.wantErr {
				t.Errorf("RequireConfigString() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if gotValue != tt.wantValue {
				t.Errorf("RequireConfigString() = %v, want %v", gotValue, tt.wantValue)
			}
			if (err != nil) && (err.Error() != tt.wantErrStr) {
				t.Errorf("RequireConfigString() error = %v, wantErr %v", err, tt.wantErrStr)
			}
		})
	}
}

func TestConfigDuration(t *testing.T) {
	viper.Set("throttle", "250ms")
	viper.Set("brokenThrottle", "soon")

	tests := []struct {
		key  string
		want time.Duration
	}{
		{key: "throttle", want: 250 * time.Millisecond},
		{key: "brokenThrottle", want: time.Second},
		{key: "unsetThrottle", want: time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := utils.ConfigDuration(tt.key, time.Second); got != tt.want {
				t.Errorf("ConfigDuration() = %v, want %v", got, tt.want)
			}
		})
	}
}
