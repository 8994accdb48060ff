package corpus

import "github.com/arjunmehta/tastemap/internal/core"

// SeedPairs returns a copy of the built-in starter catalog, used to populate
// the index on first start before any CSV has been uploaded.
func SeedPairs() []core.TrackPair {
	pairs := make([]core.TrackPair, len(seedCatalog))
	copy(pairs, seedCatalog)
	return pairs
}

var seedCatalog = []core.TrackPair{
	{Artist: "Coldplay", Song: "Yellow"},
	{Artist: "Coldplay", Song: "The Scientist"},
	{Artist: "Coldplay", Song: "Clocks"},
	{Artist: "Coldplay", Song: "Fix You"},
	{Artist: "Coldplay", Song: "Viva La Vida"},
	{Artist: "Coldplay", Song: "Paradise"},
	{Artist: "Coldplay", Song: "A Sky Full of Stars"},
	{Artist: "Coldplay", Song: "Adventure of a Lifetime"},
	{Artist: "OneRepublic", Song: "Apologize"},
	{Artist: "OneRepublic", Song: "Stop And Stare"},
	{Artist: "OneRepublic", Song: "All The Right Moves"},
	{Artist: "OneRepublic", Song: "Secrets"},
	{Artist: "OneRepublic", Song: "Good Life"},
	{Artist: "OneRepublic", Song: "Counting Stars"},
	{Artist: "OneRepublic", Song: "Feel Again"},
	{Artist: "OneRepublic", Song: "I Lived"},
	{Artist: "OneRepublic", Song: "Somebody To Love"},
	{Artist: "Luke Combs", Song: "Beautiful Crazy"},
	{Artist: "Chris Stapleton", Song: "Tennessee Whiskey"},
	{Artist: "Chris Stapleton", Song: "You Should Probably Leave"},
	{Artist: "Mr. Probz", Song: "Space For Two"},
	{Artist: "Dan + Shay", Song: "Speechless"},
	{Artist: "Dan + Shay", Song: "Tequila"},
	{Artist: "Morgan Wallen", Song: "Last Night"},
	{Artist: "Morgan Wallen", Song: "Just In Case"},
	{Artist: "Morgan Wallen", Song: "More Than My Hometown"},
	{Artist: "Morgan Wallen", Song: "7 Summers"},
	{Artist: "Cody Johnson", Song: "I'm Gonna Love You"},
	{Artist: "Colbie Caillat", Song: "Realize"},
	{Artist: "Dylan Gossett", Song: "Coal"},
	{Artist: "Brett Young", Song: "In Case You Didn't Know"},
	{Artist: "Florida Georgia Line", Song: "Dirt"},
	{Artist: "Jason Mraz", Song: "Lucky"},
	{Artist: "Howie Day", Song: "Collide"},
	{Artist: "Noor Chahal", Song: "Janiye"},
	{Artist: "Noor Chahal", Song: "Rooh"},
	{Artist: "ABRA", Song: "Gimme! Gimme! Gimme!"},
	{Artist: "Kygo", Song: "Stole the Show"},
	{Artist: "Kygo", Song: "For Life"},
	{Artist: "Kygo", Song: "Whatever"},
	{Artist: "Kygo", Song: "It Ain't Me"},
	{Artist: "Rahul Vaidya", Song: "Madhanya"},
	{Artist: "Sade", Song: "By Your Side"},
	{Artist: "Declan McKenna", Song: "Brazil"},
	{Artist: "Geowulf", Song: "Saltwater"},
	{Artist: "HARBOUR", Song: "Float"},
	{Artist: "Del Water Gap", Song: "All We Ever Do Is Talk"},
	{Artist: "Megan Davies", Song: "Infinite"},
	{Artist: "Death Cab for Cutie", Song: "Do You Remember"},
	{Artist: "Death Cab for Cutie", Song: "Your New Twin Sized Bed"},
	{Artist: "Marcy Playground", Song: "Sex & Candy"},
	{Artist: "AUR", Song: "Shikayat"},
	{Artist: "Rey Woods", Song: "Drama"},
	{Artist: "CAPT", Song: "Gehraiyaan Title Track"},
	{Artist: "Arijit Singh", Song: "California's Burning"},
	{Artist: "Arooj Aftab", Song: "Mohabbat"},
	{Artist: "Ty Myers", Song: "Thought It Was Love"},
	{Artist: "Xnoob", Song: "Far Away Place - Rampa Remix"},
	{Artist: "Baji", Song: "tell you straight"},
	{Artist: "Drake", Song: "No Face"},
	{Artist: "Scultaneous Bohemian", Song: "One By One"},
	{Artist: "JAY-Z", Song: "Real As It Gets"},
	{Artist: "Antonio Williams", Song: "Changes"},
	{Artist: "Big Red Machine", Song: "Thoughts in Progress"},
	{Artist: "The Japanese House", Song: "Dionne"},
	{Artist: "Big Red Machine", Song: "June's a River"},
	{Artist: "Big Red Machine", Song: "Phoenix"},
}
