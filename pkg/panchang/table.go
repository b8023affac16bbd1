package panchang

import "github.com/matzehuels/jyotish/pkg/zodiac"

var tithiNames = [15]string{
	"Pratipada", "Dwitiya", "Tritiya", "Chaturthi", "Panchami",
	"Shashti", "Saptami", "Ashtami", "Navami", "Dashami",
	"Ekadashi", "Dwadashi", "Trayodashi", "Chaturdashi", "",
}

var yogaNames = [27]string{
	"Vishkumbha", "Priti", "Ayushman", "Saubhagya", "Shobhana", "Atiganda",
	"Sukarma", "Dhriti", "Shula", "Ganda", "Vriddhi", "Dhruva",
	"Vyaghata", "Harshana", "Vajra", "Siddhi", "Vyatipata", "Variyan",
	"Parigha", "Shiva", "Siddha", "Sadhya", "Shubha", "Shukla",
	"Brahma", "Indra", "Vaidhriti",
}

var movableKaranas = [7]string{"Bava", "Balava", "Kaulava", "Taitila", "Gara", "Vanija", "Vishti"}

// fixedKaranas are karanas 57 to 60.
var fixedKaranas = [4]string{"Shakuni", "Chatushpada", "Naga", "Kimstughna"}

var varas = [7]Vara{
	{Lord: zodiac.Sun, Sanskrit: "Ravivara"},
	{Lord: zodiac.Moon, Sanskrit: "Somavara"},
	{Lord: zodiac.Mars, Sanskrit: "Mangalavara"},
	{Lord: zodiac.Mercury, Sanskrit: "Budhavara"},
	{Lord: zodiac.Jupiter, Sanskrit: "Guruvara"},
	{Lord: zodiac.Venus, Sanskrit: "Shukravara"},
	{Lord: zodiac.Saturn, Sanskrit: "Shanivara"},
}
