package methodgen

// 注解参数，留空时使用配置文件中的偏好

// ToStringParams @ToString 参数
type ToStringParams struct {
	Exclude   string `param:"name=exclude,required=false,default=,description=排除规则，以分号分隔，? 匹配单个字符"`
	Style     string `param:"name=style,required=false,default=,description=样式: default|multi_line|no_field_names|short_prefix|simple"`
	Bean      string `param:"name=bean,required=false,default=,description=通过 getter 发现属性: true|false"`
	Super     string `param:"name=super,required=false,default=,description=追加嵌入类型的 String(): true|false"`
	Overwrite string `param:"name=overwrite,required=false,default=,description=已有手写方法时报错: true|false"`
}

func (p ToStringParams) overrides() Overrides {
	return Overrides{Exclude: p.Exclude, Style: p.Style, Bean: p.Bean, Super: p.Super, Overwrite: p.Overwrite}
}

// EqualsParams @Equals 参数
type EqualsParams struct {
	Exclude       string `param:"name=exclude,required=false,default=,description=排除规则，以分号分隔，? 匹配单个字符"`
	Super         string `param:"name=super,required=false,default=,description=合并嵌入类型的 Equal(): true|false"`
	InstanceCheck string `param:"name=instance_check,required=false,default=,description=先比较是否为同一指针: true|false"`
	Overwrite     string `param:"name=overwrite,required=false,default=,description=已有手写方法时报错: true|false"`
}

func (p EqualsParams) overrides() Overrides {
	return Overrides{Exclude: p.Exclude, Super: p.Super, InstanceCheck: p.InstanceCheck, Overwrite: p.Overwrite}
}

// HashCodeParams @HashCode 参数
type HashCodeParams struct {
	Exclude   string `param:"name=exclude,required=false,default=,description=排除规则，以分号分隔，? 匹配单个字符"`
	Super     string `param:"name=super,required=false,default=,description=合并嵌入类型的 HashCode(): true|false"`
	Overwrite string `param:"name=overwrite,required=false,default=,description=已有手写方法时报错: true|false"`
}

func (p HashCodeParams) overrides() Overrides {
	return Overrides{Exclude: p.Exclude, Super: p.Super, Overwrite: p.Overwrite}
}

// CompareToParams @CompareTo 参数
type CompareToParams struct {
	Exclude   string `param:"name=exclude,required=false,default=,description=排除规则，以分号分隔，? 匹配单个字符"`
	Super     string `param:"name=super,required=false,default=,description=嵌入类型声明了 CompareTo 时先比较它: true|false"`
	Overwrite string `param:"name=overwrite,required=false,default=,description=已有手写方法时报错: true|false"`
}

func (p CompareToParams) overrides() Overrides {
	return Overrides{Exclude: p.Exclude, Super: p.Super, Overwrite: p.Overwrite}
}

// CommonParams @Common 参数，作用于全部四个方法
type CommonParams struct {
	Exclude       string `param:"name=exclude,required=false,default=,description=排除规则，以分号分隔，? 匹配单个字符"`
	Style         string `param:"name=style,required=false,default=,description=String() 样式"`
	Bean          string `param:"name=bean,required=false,default=,description=String() 通过 getter 发现属性: true|false"`
	Super         string `param:"name=super,required=false,default=,description=合并嵌入类型的结果: true|false"`
	InstanceCheck string `param:"name=instance_check,required=false,default=,description=Equal() 先比较是否为同一指针: true|false"`
	Overwrite     string `param:"name=overwrite,required=false,default=,description=已有手写方法时报错: true|false"`
}

func (p CommonParams) overrides() Overrides {
	return Overrides(p)
}

type overrider interface {
	overrides() Overrides
}
