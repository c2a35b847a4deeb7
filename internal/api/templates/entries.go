package templates

import "github.com/FACorreiaa/go-tourism-content/internal/types"

func defaultEntries() map[Key]string {
	return map[Key]string{
		{Platform: types.PlatformInstagram, Bucket: types.BucketWaka}: `Paddling the Ōtākaro in a traditional waka with Ko Tāne 🌿🛶

Every stroke carried a story. Our guides shared karakia, the history of the river and what it means to move as one crew on the water. We came for a tour and left with a connection to this place.

Book your waka experience at Ko Tāne, Willowbank Wildlife Reserve 👉 link in bio

#KoTane #Waka #MaoriCulture #Christchurch #NewZealand #CulturalTourism #Aotearoa`,

		{Platform: types.PlatformInstagram, Bucket: types.BucketCultural}: `An evening with Ko Tāne 🌿✨

Pōwhiri, haka, hāngī and stories passed down through generations. Ko Tāne welcomes you into Māori culture with warmth, humour and deep respect for the land.

Reserve your evening at Willowbank Wildlife Reserve 👉 link in bio

#KoTane #MaoriCulture #Haka #Hangi #Christchurch #NewZealand #Aotearoa`,

		{Platform: types.PlatformFacebook, Bucket: types.BucketWaka}: `Have you ever travelled a river the way the first voyagers did?

At Ko Tāne our guests board a traditional waka and learn to paddle together while our kaiārahi share the stories of the awa, the ancestors who navigated it and the tikanga that guides every journey on the water. It is gentle, hands-on and suitable for the whole whānau.

Sessions run daily from Willowbank Wildlife Reserve in Christchurch. Message us or book online to secure your place on the next waka.

#KoTane #Waka #MaoriCulture #Christchurch`,

		{Platform: types.PlatformFacebook, Bucket: types.BucketCultural}: `Kia ora koutou! 👋

Ko Tāne is an authentic Māori cultural experience set within Willowbank Wildlife Reserve. Your evening begins with a pōwhiri, moves through a village of storytelling, weaving and taonga puoro, and ends with a haka performance and a traditional hāngī feast.

Our team shares these traditions with pride and respect, and we would love to share them with you. Book your evening online or send us a message with any questions.

#KoTane #MaoriCulture #Christchurch #NewZealand`,

		{Platform: types.PlatformTwitter, Bucket: types.BucketWaka}: `Paddle a traditional waka with Ko Tāne and hear the stories of the river from our Māori guides. Daily sessions in Christchurch. Book now 🛶 #KoTane #Waka #Aotearoa`,

		{Platform: types.PlatformTwitter, Bucket: types.BucketCultural}: `Pōwhiri, haka and a hāngī feast: spend an evening with Ko Tāne at Willowbank, Christchurch. Book your place today 🌿 #KoTane #MaoriCulture #Aotearoa`,

		{Platform: types.PlatformLinkedIn, Bucket: types.BucketWaka}: `Team building on the water, grounded in culture.

Ko Tāne's waka experience invites groups to paddle a traditional Māori canoe together. Crews learn the calls and rhythm that keep a waka moving, guided by kaiārahi who share the history and values behind every voyage. It is a memorable way to build trust and shared purpose.

We host corporate groups, conference delegates and incentive programmes year-round in Christchurch. Get in touch to plan your group's session.

#CulturalTourism #TeamBuilding #KoTane #NewZealand`,

		{Platform: types.PlatformLinkedIn, Bucket: types.BucketCultural}: `Authentic cultural experiences are increasingly what international visitors ask for, and Ko Tāne delivers exactly that.

Our Māori-led evening programme at Willowbank Wildlife Reserve combines pōwhiri, storytelling, haka and a traditional hāngī. We work with tour operators, inbound agents and event planners to host groups of every size with care and authenticity.

Connect with our team to discuss partnership and group bookings.

#CulturalTourism #MaoriTourism #KoTane #Christchurch`,
	}
}
