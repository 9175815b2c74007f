package model

// TradingBooks are the books execution-sourced trades rotate across and the
// per-book rows historical position output expands to.
var TradingBooks = []string{"TRSY1", "TRSY2", "TRSY3"}
