package g2

type Type struct {
	ID int
}
