package urls

// Landing page section anchors, in navigation order.
const (
	Features   = "#features"
	UseCases   = "#usecases"
	Agents     = "#agents"
	Pricing    = "#pricing"
	Docs       = "#docs"
	GetStarted = "#get-started"
)

// Login is the route of the terminal authentication screen.
const Login = "/login"

// Home is the route of the landing page.
const Home = "/"

// GitHub is the project repository shown next to the star count.
const GitHub = "https://github.com/zeroapi/zeroapi"
