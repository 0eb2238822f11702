package comparison

// Package comparison requests semantic comparisons of two article texts from the
// backend. Languages, threshold and model are fixed client constants.
