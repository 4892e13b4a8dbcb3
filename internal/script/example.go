package script

import "strings"

// ExampleYAML is the demo script written by "parley init" and played when no
// script is given.
const ExampleYAML = `title: A very basic story
dialogues:
  - name: main
    keys: [space, enter, a]
    paragraphs:
      - sentences:
          - text: "Press Enter, Space or A to advance"
      - sentences:
          - text: "This is a very basic story,\n"
          - text: "that uses colors,\n"
            color: "#ff0000"
          - text: "different text sizes,\n"
            size: 64
          - text: "different fonts for accessibility's sake,\n"
            font: italic
          - text: "and typewriter text... "
          - text: "that you can skip if you're really impatient."
            typewriter: true
      - position: {left: 300px}
        sentences:
          - text: "It can move itself around."
      - position: {left: 0px}
        width: 25%
        sentences:
          - text: "And can squish itself at will."
            action: scene:second_dialogue
      - width: 50%
        sentences:
          - text: "You can even have "
      - sentences:
          - text: "Oh and you can affect the world directly..."
            action: background:#572268
          - text: "like so!"
      - width: 100%
        sentences:
          - text: "And it was only after I made this that I realised someone else had already written one..."
            typewriter: {speed: 0.7}
  - name: side
    keys: [space, enter, a]
scenes:
  second_dialogue:
    dialogue: side
    paragraphs:
      - width: 50%
        sentences:
          - text: "multiple running at once!"
`

// Example returns the parsed demo script.
func Example() (*Script, error) {
	return LoadFromReader(strings.NewReader(ExampleYAML))
}
