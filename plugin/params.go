package plugin

import (
	"reflect"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cast"
)

// ParseParamsFromStruct 从结构体的 param tag 解析参数定义
// 支持的 tag 键: name, required, default, description
//
//	type Params struct {
//	    Style string `param:"name=style,required=false,default=,description=ToString 样式"`
//	}
//
//	params := plugin.ParseParamsFromStruct(Params{})
func ParseParamsFromStruct(v any) []ParamDef {
	typ := reflect.TypeOf(v)
	if typ == nil {
		return nil
	}
	if typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return nil
	}

	var params []ParamDef
	for i := range typ.NumField() {
		tag := typ.Field(i).Tag.Get("param")
		if tag == "" {
			continue
		}
		if def := parseParamTag(tag); def.Name != "" {
			params = append(params, def)
		}
	}
	return params
}

// parseParamTag 解析 name=xxx,required=true,default=xxx,description=xxx
func parseParamTag(tag string) ParamDef {
	var param ParamDef
	for key, value := range splitTag(tag) {
		switch key {
		case "name":
			param.Name = value
		case "required":
			param.Required = cast.ToBool(value)
		case "default":
			param.Default = value
		case "description":
			param.Description = value
		}
	}
	return param
}

// splitTag 分割 key1=value1,key2=value2，反斜杠转义下一个字符
func splitTag(tag string) map[string]string {
	result := make(map[string]string)

	var key, value strings.Builder
	inKey := true
	escaped := false

	flush := func() {
		if key.Len() > 0 {
			result[key.String()] = value.String()
		}
		key.Reset()
		value.Reset()
		inKey = true
	}

	for i := 0; i < len(tag); i++ {
		ch := tag[i]
		switch {
		case escaped:
			escaped = false
		case ch == '\\':
			escaped = true
			continue
		case ch == '=' && inKey:
			inKey = false
			continue
		case ch == ',':
			flush()
			continue
		}
		if inKey {
			key.WriteByte(ch)
		} else {
			value.WriteByte(ch)
		}
	}
	flush()

	return result
}

// ParseOptionalBool 解析可省略的布尔参数
// 空串返回 set=false，由调用方回退到偏好设置
func ParseOptionalBool(value string) (val bool, set bool, err error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return false, false, nil
	}
	val, err = cast.ToBoolE(value)
	if err != nil {
		return false, false, errors.Wrapf(err, "invalid bool %q", value)
	}
	return val, true, nil
}

// ParseAnnotationParams 将注解参数写入目标结构体
// target 必须是结构体指针；注解中未出现的参数使用 paramDefs 中的默认值
func ParseAnnotationParams(annotation *Annotation, target any, paramDefs []ParamDef) error {
	val := reflect.ValueOf(target)
	if val.Kind() != reflect.Ptr || val.IsNil() {
		return nil
	}
	val = val.Elem()
	typ := val.Type()
	if typ.Kind() != reflect.Struct {
		return nil
	}

	defaults := make(map[string]string, len(paramDefs))
	for _, def := range paramDefs {
		defaults[def.Name] = def.Default
	}

	for i := range typ.NumField() {
		field := typ.Field(i)
		fieldVal := val.Field(i)
		if !fieldVal.CanSet() {
			continue
		}

		tag := field.Tag.Get("param")
		if tag == "" {
			continue
		}
		def := parseParamTag(tag)
		if def.Name == "" {
			continue
		}

		value, ok := annotation.Params[strings.ToLower(def.Name)]
		if !ok {
			if def.Required {
				return errors.Newf("@%s 缺少必填参数 %s", annotation.Name, def.Name)
			}
			value = defaults[def.Name]
		}

		if err := setFieldValue(fieldVal, value); err != nil {
			return errors.Wrapf(err, "@%s 参数 %s", annotation.Name, def.Name)
		}
	}

	return nil
}

// setFieldValue 按字段类型转换参数值，空串保持零值
func setFieldValue(field reflect.Value, value string) error {
	if value == "" {
		return nil
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Bool:
		b, err := cast.ToBoolE(value)
		if err != nil {
			return err
		}
		field.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := cast.ToInt64E(value)
		if err != nil {
			return err
		}
		field.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := cast.ToUint64E(value)
		if err != nil {
			return err
		}
		field.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := cast.ToFloat64E(value)
		if err != nil {
			return err
		}
		field.SetFloat(f)
	case reflect.Slice:
		if field.Type().Elem().Kind() != reflect.String {
			return errors.Newf("unsupported slice type %s", field.Type())
		}
		parts := strings.FieldsFunc(value, func(r rune) bool { return r == ';' || r == '|' })
		field.Set(reflect.ValueOf(parts).Convert(field.Type()))
	default:
		return errors.Newf("unsupported param type %s", field.Type())
	}
	return nil
}
