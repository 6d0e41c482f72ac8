package profile

// Selection catalogs the profile screens offer. The backend accepts free
// strings; these lists exist so both roles pick from a vocabulary the
// matcher can actually overlap on.

var StudentResearchOptions = []string{
	"Artificial Intelligence",
	"Machine Learning",
	"Data Science",
	"Software Engineering",
	"Web Development",
	"Mobile Development",
	"Cybersecurity",
	"Cloud Computing",
	"Computer Networks",
	"Database Systems",
	"Computer Vision",
	"Natural Language Processing",
}

var CareerGoalOptions = []string{
	"Software Developer",
	"Data Scientist",
	"Machine Learning Engineer",
	"Web Developer",
	"Mobile App Developer",
	"DevOps Engineer",
	"Cloud Architect",
	"Cybersecurity Analyst",
	"Database Administrator",
	"Network Engineer",
	"AI Research Scientist",
	"Full Stack Developer",
}

var AdvisorResearchOptions = []string{
	"Artificial Intelligence", "Machine Learning", "Data Science", "Software Engineering",
	"Web Development", "Mobile Development", "Cybersecurity", "Cloud Computing",
	"Computer Networks", "Database Systems", "Computer Vision", "Natural Language Processing",
	"Human-Computer Interaction", "Computer Graphics", "Operating Systems", "Algorithms",
	"Data Structures", "Computer Architecture", "Embedded Systems", "Robotics",
}

var ExpertiseOptions = []string{
	"Software Development", "Data Science", "Machine Learning Engineering", "DevOps",
	"Cloud Architecture", "Research & Development", "Data Analysis", "Backend Development",
	"Frontend Development", "Full Stack Development", "AI Engineering", "Systems Analysis",
	"Mobile App Development", "Web Development", "Database Administration", "Network Security",
	"Computer Vision", "Natural Language Processing", "Big Data", "IoT Development",
}
