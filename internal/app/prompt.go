package app

import (
	"fmt"
	"strings"
)

func (a *PostingApp) prompt(label string) string {
	fmt.Print(label)
	line, err := a.in.ReadString('\n')
	if err != nil {
		return ""
	}
	return strings.TrimSpace(line)
}

// promptChoice 循环追问直到拿到合法输入
func (a *PostingApp) promptChoice(label string, choices ...string) string {
	for {
		answer := strings.ToLower(a.prompt(label + " "))
		for _, choice := range choices {
			if answer == choice {
				return answer
			}
		}
		fmt.Printf("Response %q is not valid!\n", answer)
	}
}
