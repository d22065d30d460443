package main

// Seed corpus: 50 movie titles, 50 user names and per-rating review
// templates. Comments are written to match their rating band so the
// resolver's consistency rule holds for the generated data.

var movieTitles = []string{
	"The Shawshank Redemption",
	"The Godfather",
	"The Dark Knight",
	"Pulp Fiction",
	"Forrest Gump",
	"Inception",
	"The Matrix",
	"Goodfellas",
	"The Lord of the Rings: The Fellowship of the Ring",
	"Fight Club",
	"Star Wars: Episode V - The Empire Strikes Back",
	"The Lord of the Rings: The Return of the King",
	"The Godfather Part II",
	"The Lord of the Rings: The Two Towers",
	"The Dark Knight Rises",
	"Interstellar",
	"Spirited Away",
	"The Lion King",
	"Gladiator",
	"The Departed",
	"The Prestige",
	"Whiplash",
	"Casablanca",
	"The Silence of the Lambs",
	"Saving Private Ryan",
	"The Green Mile",
	"The Usual Suspects",
	"Se7en",
	"The Sixth Sense",
	"Toy Story",
	"Schindler's List",
	"One Flew Over the Cuckoo's Nest",
	"The Terminator",
	"Back to the Future",
	"Raiders of the Lost Ark",
	"Jaws",
	"E.T. the Extra-Terrestrial",
	"Titanic",
	"Avatar",
	"Jurassic Park",
	"The Avengers",
	"Iron Man",
	"Spider-Man: Into the Spider-Verse",
	"Black Panther",
	"Get Out",
	"La La Land",
	"Mad Max: Fury Road",
	"The Grand Budapest Hotel",
	"Her",
	"Django Unchained",
	"The Social Network",
}

var userNames = []string{
	"Alex Johnson", "Sarah Chen", "Mike Rodriguez", "Emma Thompson", "David Kim",
	"Lisa Anderson", "Chris Wilson", "Maria Garcia", "James Brown", "Anna Smith",
	"Robert Taylor", "Jennifer Lee", "Michael Davis", "Amanda White", "Daniel Martinez",
	"Jessica Miller", "Kevin Jones", "Rachel Green", "Brian Wilson", "Nicole Taylor",
	"Steven Clark", "Michelle Adams", "Ryan Murphy", "Stephanie Lewis", "Jason Walker",
	"Ashley Hall", "Brandon Young", "Megan King", "Tyler Wright", "Samantha Lopez",
	"Jordan Hill", "Brittany Scott", "Nathan Green", "Kayla Adams", "Zachary Baker",
	"Crystal Turner", "Logan Parker", "Destiny Evans", "Caleb Roberts", "Jasmine Reed",
	"Austin Cook", "Vanessa Morgan", "Ethan Bell", "Monica Cooper", "Hunter Richardson",
	"Paige Cox", "Mason Ward", "Taylor Murphy", "Blake Torres", "Jordan Peterson",
}

// reviewTemplates maps a rating to candidate comments for that rating.
var reviewTemplates = map[int][]string{
	5: {
		"Absolutely incredible! This movie exceeded all my expectations. The acting, direction, and cinematography were flawless.",
		"A masterpiece! One of the best films I've ever seen. Highly recommend to everyone.",
		"Outstanding performance from start to finish. This will definitely be a classic.",
		"Brilliant storytelling and amazing visuals. Couldn't take my eyes off the screen.",
		"Perfect in every way. The plot was engaging and the characters were well-developed.",
		"Exceptional film! The emotional depth and technical execution were outstanding.",
		"A true work of art. This movie will stay with me for a long time.",
		"Fantastic! Everything about this film was top-notch. A must-watch!",
		"Incredible experience! The best movie I've seen this year.",
		"Outstanding! The attention to detail and storytelling were remarkable.",
	},
	4: {
		"Really enjoyed this movie! Great acting and an engaging story.",
		"Solid film with excellent performances. Would definitely watch again.",
		"Very good movie with strong character development and plot.",
		"Enjoyed it thoroughly! Great direction and cinematography.",
		"Well-made film with compelling storytelling. Recommended!",
		"Good movie with strong performances. Worth watching.",
		"Solid entertainment! The story was engaging and well-executed.",
		"Really liked this one! Great cast and interesting plot.",
		"Enjoyable film with good pacing and character arcs.",
		"Well-crafted movie with strong visual elements.",
	},
	3: {
		"Decent movie overall. Some good moments but nothing extraordinary.",
		"It was okay. The story was interesting but had some pacing issues.",
		"Average film with some highlights but also some weaknesses.",
		"Not bad, but not great either. Worth a watch if you have time.",
		"Mixed feelings about this one. Some parts were good, others not so much.",
		"Decent entertainment but nothing that really stood out to me.",
		"It was fine. The acting was good but the plot was predictable.",
		"Okay movie with some enjoyable moments. Nothing special though.",
		"Average film that had its moments but overall was just okay.",
		"Decent watch but didn't leave a lasting impression.",
	},
	2: {
		"Disappointing. The story had potential but the execution fell flat.",
		"Not great. The pacing was off and the characters weren't well-developed.",
		"Below average. Some good ideas but poor execution overall.",
		"Could have been better. The plot was confusing and the acting was weak.",
		"Not impressed. The movie had some good moments but many flaws.",
		"Disappointing film. The story was promising but poorly executed.",
		"Not my cup of tea. The direction was confusing and the plot was weak.",
		"Could be better. Some interesting ideas but overall execution was poor.",
		"Not great. The movie had potential but failed to deliver.",
		"Disappointing. Expected more from this film.",
	},
	1: {
		"Terrible movie. Complete waste of time. Nothing worked in this film.",
		"Awful! One of the worst movies I've ever seen. Avoid at all costs.",
		"Horrible film. Poor acting, bad plot, and terrible direction.",
		"Complete disaster. Nothing about this movie was good.",
		"Worst movie ever! Terrible in every possible way.",
		"Absolutely terrible. Don't waste your time on this one.",
		"Horrible experience. The movie was a complete mess.",
		"Terrible film. Nothing redeeming about it at all.",
		"Awful movie. Complete waste of time and money.",
		"Disaster of a film. Avoid this at all costs.",
	},
}

// ratingWeights skews the generated ratings toward 4s and 5s.
var ratingWeights = []float64{0.05, 0.1, 0.2, 0.35, 0.3}
