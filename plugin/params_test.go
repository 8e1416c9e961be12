package plugin

import (
	"testing"
)

func TestParseParamsFromStruct(t *testing.T) {
	type TestParams struct {
		Style   string `param:"name=style,required=true,default=,description=ToString 样式"`
		Super   string `param:"name=super,required=false,default=true,description=追加嵌入类型的结果"`
		Exclude string `param:"name=exclude,required=false,default=,description=排除规则\\, 以分号分隔"`
		Ignored string
	}

	params := ParseParamsFromStruct(TestParams{})
	if len(params) != 3 {
		t.Fatalf("Expected 3 params, got %d", len(params))
	}

	if params[0].Name != "style" || !params[0].Required {
		t.Errorf("Expected required style, got %+v", params[0])
	}
	if params[1].Name != "super" || params[1].Required || params[1].Default != "true" {
		t.Errorf("Expected optional super with default true, got %+v", params[1])
	}
	if params[2].Description != "排除规则, 以分号分隔" {
		t.Errorf("Expected escaped comma in description, got '%s'", params[2].Description)
	}
}

func TestParseParamsFromStruct_NotStruct(t *testing.T) {
	if params := ParseParamsFromStruct(struct{}{}); len(params) != 0 {
		t.Errorf("Expected 0 params, got %d", len(params))
	}
	if params := ParseParamsFromStruct("x"); params != nil {
		t.Errorf("Expected nil for non-struct, got %v", params)
	}
	if params := ParseParamsFromStruct(nil); params != nil {
		t.Errorf("Expected nil for nil, got %v", params)
	}
}

func TestParseParamsFromStruct_Pointer(t *testing.T) {
	type TestParams struct {
		Field1 string `param:"name=field1,required=true,default=,description=Test field"`
	}

	params := ParseParamsFromStruct(&TestParams{})
	if len(params) != 1 || params[0].Name != "field1" {
		t.Errorf("Expected field1, got %+v", params)
	}
}

func TestParseAnnotationParams(t *testing.T) {
	type TestParams struct {
		Style   string   `param:"name=style,required=false,default=default,description=样式"`
		Super   string   `param:"name=super,required=false,default=,description=追加嵌入类型"`
		Depth   int      `param:"name=depth,required=false,default=10,description=深度"`
		Enable  bool     `param:"name=enable,required=false,default=false,description=启用"`
		Exclude []string `param:"name=exclude,required=false,default=,description=排除"`
	}

	tests := []struct {
		name        string
		comment     string
		wantStyle   string
		wantSuper   string
		wantDepth   int
		wantEnable  bool
		wantExclude []string
	}{
		{
			name:      "反引号格式",
			comment:   "// @ToString(style=`simple`)",
			wantStyle: "simple",
			wantDepth: 10,
		},
		{
			name:      "双引号格式",
			comment:   `// @ToString(style="multi_line")`,
			wantStyle: "multi_line",
			wantDepth: 10,
		},
		{
			name:        "多个参数",
			comment:     "// @ToString(style=`short_prefix`, super=false, depth=`3`, enable=true, exclude=id;log)",
			wantStyle:   "short_prefix",
			wantSuper:   "false",
			wantDepth:   3,
			wantEnable:  true,
			wantExclude: []string{"id", "log"},
		},
		{
			name:       "布尔值 1",
			comment:    "// @ToString(enable=1)",
			wantStyle:  "default",
			wantDepth:  10,
			wantEnable: true,
		},
		{
			name:      "无参数使用默认值",
			comment:   "// @ToString()",
			wantStyle: "default",
			wantDepth: 10,
		},
	}

	paramDefs := ParseParamsFromStruct(TestParams{})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			annotations := ParseAnnotations(tt.comment)
			if len(annotations) == 0 {
				t.Fatal("未解析到注解")
			}

			var params TestParams
			if err := ParseAnnotationParams(annotations[0], &params, paramDefs); err != nil {
				t.Fatalf("解析参数失败: %v", err)
			}

			if params.Style != tt.wantStyle {
				t.Errorf("Style = %q, want %q", params.Style, tt.wantStyle)
			}
			if params.Super != tt.wantSuper {
				t.Errorf("Super = %q, want %q", params.Super, tt.wantSuper)
			}
			if params.Depth != tt.wantDepth {
				t.Errorf("Depth = %d, want %d", params.Depth, tt.wantDepth)
			}
			if params.Enable != tt.wantEnable {
				t.Errorf("Enable = %v, want %v", params.Enable, tt.wantEnable)
			}
			if len(params.Exclude) != len(tt.wantExclude) {
				t.Errorf("Exclude = %v, want %v", params.Exclude, tt.wantExclude)
			}
		})
	}
}

func TestParseAnnotationParams_Required(t *testing.T) {
	type TestParams struct {
		Name string `param:"name=name,required=true,default=,description=名称"`
	}

	ann := ParseAnnotations("// @Thing")[0]
	var params TestParams
	if err := ParseAnnotationParams(ann, &params, ParseParamsFromStruct(TestParams{})); err == nil {
		t.Error("expected error for missing required param")
	}

	ann = ParseAnnotations("// @Thing(name=x)")[0]
	if err := ParseAnnotationParams(ann, &params, ParseParamsFromStruct(TestParams{})); err != nil || params.Name != "x" {
		t.Errorf("expected name=x, got %q (%v)", params.Name, err)
	}
}

func TestParseAnnotationParams_Invalid(t *testing.T) {
	type TestParams struct {
		Depth  int  `param:"name=depth,required=false,default=,description=深度"`
		Enable bool `param:"name=enable,required=false,default=,description=启用"`
	}

	for _, comment := range []string{"// @Thing(depth=deep)", "// @Thing(enable=maybe)"} {
		ann := ParseAnnotations(comment)[0]
		var params TestParams
		if err := ParseAnnotationParams(ann, &params, nil); err == nil {
			t.Errorf("expected error for %s", comment)
		}
	}
}

func TestParseOptionalBool(t *testing.T) {
	tests := []struct {
		in      string
		val     bool
		set     bool
		wantErr bool
	}{
		{"", false, false, false},
		{"  ", false, false, false},
		{"true", true, true, false},
		{"0", false, true, false},
		{"F", false, true, false},
		{"maybe", false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			val, set, err := ParseOptionalBool(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if val != tt.val || set != tt.set {
				t.Errorf("got (%v, %v), want (%v, %v)", val, set, tt.val, tt.set)
			}
		})
	}
}

func TestSplitTag(t *testing.T) {
	got := splitTag(`name=a,description=x\,y\=z,empty=`)
	if got["name"] != "a" || got["description"] != "x,y=z" || got["empty"] != "" {
		t.Errorf("unexpected split result: %v", got)
	}
	if _, ok := got["empty"]; !ok {
		t.Error("empty value should be kept")
	}
}
