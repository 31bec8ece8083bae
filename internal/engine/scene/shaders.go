package scene

// Mesh shaders: per-vertex color modulated by an ambient term plus
// three directional diffuse contributions. The same program renders
// indexed triangles and point clouds; gl_PointSize only takes effect
// for point draws with PROGRAM_POINT_SIZE enabled.

const meshVertexShader = `
#version 410 core

layout(location = 0) in vec3 aPosition;
layout(location = 1) in vec3 aNormal;
layout(location = 2) in vec3 aColor;

uniform mat4 uMVP;
uniform float uPointSize;

out vec3 vNormal;
out vec3 vColor;

void main() {
    gl_Position = uMVP * vec4(aPosition, 1.0);
    gl_PointSize = uPointSize;
    vNormal = aNormal;
    vColor = aColor;
}
`

const meshFragmentShader = `
#version 410 core

in vec3 vNormal;
in vec3 vColor;

uniform vec3 uAmbient;
uniform vec3 uLightDirs[3];
uniform vec3 uLightColors[3];
uniform float uLightIntensities[3];

out vec4 fragColor;

void main() {
    vec3 n = normalize(vNormal);
    vec3 light = uAmbient;
    for (int i = 0; i < 3; i++) {
        float d = max(dot(n, normalize(uLightDirs[i])), 0.0);
        light += uLightColors[i] * uLightIntensities[i] * d;
    }
    fragColor = vec4(vColor * min(light, vec3(1.0)), 1.0);
}
`

// Line shaders: unlit flat color for the bounds overlay.

const lineVertexShader = `
#version 410 core

layout(location = 0) in vec3 aPosition;

uniform mat4 uMVP;

void main() {
    gl_Position = uMVP * vec4(aPosition, 1.0);
}
`

const lineFragmentShader = `
#version 410 core

uniform vec3 uColor;

out vec4 fragColor;

void main() {
    fragColor = vec4(uColor, 1.0);
}
`
