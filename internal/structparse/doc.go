// Package structparse 提供 Go 命名类型的静态解析。
//
// 本包支持以下功能：
//
//  1. 类型解析 - 提取结构体自身声明的字段，包括类型表达式、标签、嵌入信息
//  2. 方法收集 - 扫描类型所在包目录（不递归），收集该类型的全部方法
//  3. 生成文件识别 - 标记位于 "Code generated ... DO NOT EDIT." 文件中的方法
//  4. 导入解析 - 记录类型所在文件的导入，支持别名以及包名与目录名不一致的情况
//
// # 基本用法
//
//	ctx := structparse.NewParseContextWithRoot(projectRoot)
//	decl, err := ctx.ParseType("model/user.go", "User")
//	if err != nil {
//	    return err
//	}
//	for _, f := range decl.Fields {
//	    fmt.Printf("  字段: %s %s\n", f.Name, f.Type)
//	}
//
// # 嵌入字段
//
// 本包不展开嵌入字段，嵌入字段以 Embedded=true 记录，并拆分出包限定符和基础类型名：
//
//	type User struct {
//	    BaseModel        // Qualifier="", BaseType="BaseModel"
//	    *audit.Info      // Qualifier="audit", BaseType="Info", Pointer=true
//	}
//
// 祖先链的展开、可见性判断由调用方（gohost）负责，
// 通过 TypeDecl.ResolveQualifier 将限定符映射为导入路径后再调用 FindType。
//
// # 限制
//
//   - 只做语法解析，不做类型检查；类型别名视为非结构体类型
//   - 点导入的类型无法解析到来源包
package structparse
