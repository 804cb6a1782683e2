// Package payment defines the payment methods shared by purchasing and
// cash documents.
package payment

// Method defines how a document was paid.
type Method string

const (
	// Contado is immediate cash/transfer payment
	Contado Method = "contado"
	// Credito is supplier credit (accounts payable to the supplier)
	Credito Method = "credito"
	// TarjetaSocio is a partner's credit card (payable to the partner)
	TarjetaSocio Method = "tarjeta_socio"
)

// IsCredit returns true for methods that create an account payable.
func (m Method) IsCredit() bool {
	return m == Credito || m == TarjetaSocio
}

// IsValid reports whether m is a known method.
func (m Method) IsValid() bool {
	switch m {
	case Contado, Credito, TarjetaSocio:
		return true
	}
	return false
}
