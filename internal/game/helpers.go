package game

import (
	"strconv"
	"strings"
)

// scriptedPrefix is the name prefix shared by scripted players
const scriptedPrefix = "Computer"

// ScriptedName returns the name the next scripted player would receive,
// numbering them among players already named "Computer ...".
func ScriptedName(players []Player) string {
	n := 1
	for _, p := range players {
		if strings.HasPrefix(p.Name, scriptedPrefix) {
			n++
		}
	}
	return scriptedPrefix + " " + strconv.Itoa(n)
}

// HandSizes returns the number of cards each player holds, in seat order
func (s State) HandSizes() []int {
	sizes := make([]int, len(s.Players))
	for i, p := range s.Players {
		sizes[i] = len(p.Hand)
	}
	return sizes
}
