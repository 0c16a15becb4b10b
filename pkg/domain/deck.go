package domain

// DefaultDeck is the fibonacci-ish estimate deck shown to every player.
// "?" means "no idea" and the coffee cup means "I need a break".
var DefaultDeck = []string{"0", "1", "2", "3", "5", "8", "13", "21", "34", "55", "89", "?", "☕️"}
