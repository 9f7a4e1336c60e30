package shortcode

// DefaultEmojiTable is the Appendix-A ordered set of 64 emoji used for the
// emoji short-authentication-string representation. Index i corresponds to
// the 6-bit value computed by DecodeEmojiIndices.
var DefaultEmojiTable = [64]Emoji{
	{Index: 0, Value: "🐶", Name: "Dog"},
	{Index: 1, Value: "🐱", Name: "Cat"},
	{Index: 2, Value: "🦁", Name: "Lion"},
	{Index: 3, Value: "🐎", Name: "Horse"},
	{Index: 4, Value: "🦄", Name: "Unicorn"},
	{Index: 5, Value: "🐷", Name: "Pig"},
	{Index: 6, Value: "🐘", Name: "Elephant"},
	{Index: 7, Value: "🐰", Name: "Rabbit"},
	{Index: 8, Value: "🐼", Name: "Panda"},
	{Index: 9, Value: "🐓", Name: "Rooster"},
	{Index: 10, Value: "🐧", Name: "Penguin"},
	{Index: 11, Value: "🐢", Name: "Turtle"},
	{Index: 12, Value: "🐟", Name: "Fish"},
	{Index: 13, Value: "🐙", Name: "Octopus"},
	{Index: 14, Value: "🦋", Name: "Butterfly"},
	{Index: 15, Value: "🌷", Name: "Flower"},
	{Index: 16, Value: "🌳", Name: "Tree"},
	{Index: 17, Value: "🌵", Name: "Cactus"},
	{Index: 18, Value: "🍄", Name: "Mushroom"},
	{Index: 19, Value: "🌏", Name: "Globe"},
	{Index: 20, Value: "🌙", Name: "Moon"},
	{Index: 21, Value: "☁️", Name: "Cloud"},
	{Index: 22, Value: "🔥", Name: "Fire"},
	{Index: 23, Value: "🍌", Name: "Banana"},
	{Index: 24, Value: "🍎", Name: "Apple"},
	{Index: 25, Value: "🍓", Name: "Strawberry"},
	{Index: 26, Value: "🌽", Name: "Corn"},
	{Index: 27, Value: "🍕", Name: "Pizza"},
	{Index: 28, Value: "🎂", Name: "Cake"},
	{Index: 29, Value: "❤️", Name: "Heart"},
	{Index: 30, Value: "🙂", Name: "Smiley"},
	{Index: 31, Value: "🤖", Name: "Robot"},
	{Index: 32, Value: "🎩", Name: "Hat"},
	{Index: 33, Value: "👓", Name: "Glasses"},
	{Index: 34, Value: "🔧", Name: "Spanner"},
	{Index: 35, Value: "🎅", Name: "Santa"},
	{Index: 36, Value: "👍", Name: "Thumbs Up"},
	{Index: 37, Value: "☂️", Name: "Umbrella"},
	{Index: 38, Value: "⌛", Name: "Hourglass"},
	{Index: 39, Value: "⏰", Name: "Clock"},
	{Index: 40, Value: "🎁", Name: "Gift"},
	{Index: 41, Value: "💡", Name: "Light Bulb"},
	{Index: 42, Value: "📕", Name: "Book"},
	{Index: 43, Value: "✏️", Name: "Pencil"},
	{Index: 44, Value: "📎", Name: "Paperclip"},
	{Index: 45, Value: "✂️", Name: "Scissors"},
	{Index: 46, Value: "🔒", Name: "Lock"},
	{Index: 47, Value: "🔑", Name: "Key"},
	{Index: 48, Value: "🔨", Name: "Hammer"},
	{Index: 49, Value: "☎️", Name: "Telephone"},
	{Index: 50, Value: "🏁", Name: "Flag"},
	{Index: 51, Value: "🚂", Name: "Train"},
	{Index: 52, Value: "🚲", Name: "Bicycle"},
	{Index: 53, Value: "✈️", Name: "Aeroplane"},
	{Index: 54, Value: "🚀", Name: "Rocket"},
	{Index: 55, Value: "🏆", Name: "Trophy"},
	{Index: 56, Value: "⚽", Name: "Ball"},
	{Index: 57, Value: "🎸", Name: "Guitar"},
	{Index: 58, Value: "🎺", Name: "Trumpet"},
	{Index: 59, Value: "🔔", Name: "Bell"},
	{Index: 60, Value: "⚓", Name: "Anchor"},
	{Index: 61, Value: "🎧", Name: "Headphones"},
	{Index: 62, Value: "📁", Name: "Folder"},
	{Index: 63, Value: "📌", Name: "Pin"},
}
