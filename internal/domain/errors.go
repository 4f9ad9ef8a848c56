package domain

import "fmt"

func errMixedExchange(want, got Exchange) error {
	return fmt.Errorf("book slice carries exchange %s but contains a level from %s", want, got)
}

func errUnsorted(side string) error {
	return fmt.Errorf("%s side is not correctly sorted", side)
}
