package methods

type (
	// Status 非结构体命名类型
	Status int

	// Pair 分组声明中的结构体
	Pair[K comparable, V any] struct {
		Key   K
		Value V
	}

	// Code 以另一个命名类型为底层类型
	Code Status

	// Label 别名
	Label = Status
)

func (s Status) IsActive() bool { return s == 1 }

func (p *Pair[K, V]) GetKey() K { return p.Key }
