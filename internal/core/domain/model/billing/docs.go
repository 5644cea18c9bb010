// Package billing models storage pricing, the charge breakdown of a release and
// the invoice that records it.
//
// All money is kept in shopspring/decimal and rounded to kernel.AmountScale
// places at the boundaries where amounts become final.
package billing
