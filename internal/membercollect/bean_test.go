package membercollect

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPropertyName(t *testing.T) {
	tests := []struct {
		method string
		want   string
	}{
		{"getName", "name"},
		{"GetName", "name"},
		{"getURL", "URL"},
		{"GetURL", "URL"},
		{"getA", "a"},
		{"isValid", "valid"},
		{"IsValid", "valid"},
		{"isX", "x"},
		{"getComputedValue", "computedValue"},
		{"GetID", "ID"},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			assert.Equal(t, tt.want, PropertyName(tt.method))
		})
	}
}

func TestIsGetter(t *testing.T) {
	tests := []struct {
		name   string
		method Method
		want   bool
	}{
		{"get prefix", Method{Name: "GetName", Visibility: Public}, true},
		{"lower get prefix", Method{Name: "getName", Visibility: Public}, true},
		{"bare get", Method{Name: "Get", Visibility: Public}, false},
		{"is with bool", Method{Name: "IsOpen", Visibility: Public, ReturnsBool: true}, true},
		{"is without bool", Method{Name: "IsOpen", Visibility: Public}, false},
		{"bare is", Method{Name: "Is", Visibility: Public, ReturnsBool: true}, false},
		{"has params", Method{Name: "GetName", Visibility: Public, ParamCount: 1}, false},
		{"not public", Method{Name: "GetName", Visibility: Package}, false},
		{"other name", Method{Name: "Name", Visibility: Public}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsGetter(tt.method))
		})
	}
}
